package bot

// Bot commands.
const (
	commandStart           = "start"
	commandHelp            = "help"
	commandPrivacy         = "privacy"
	commandSelectInterests = "select_interests"
	commandRemoveInterest  = "remove_interest"
	commandShowMyInterests = "show_my_interests"
	commandMuseumsForMe    = "museums_for_me"
	commandCancel          = "cancel"
)

const startText = "Привет! Я бот проекта Muza.\n" +
	"Могу подобрать музеи под ваши интересы. Давайте выберем куда вам сходить. " +
	"Расскажите что вам интересно:\n"

const helpText = "Доступные команды:\n" +
	"/" + commandStart + " - Начать работу с ботом\n" +
	"/" + commandSelectInterests + " - Указать свои интересы\n" +
	"/" + commandRemoveInterest + " - Удалить выбранные интересы\n" +
	"/" + commandShowMyInterests + " - Показать ваши выбранные интересы\n" +
	"/" + commandMuseumsForMe + " - Найти музеи по вашим интересам\n" +
	"/" + commandPrivacy + " - Политика конфиденциальности\n" +
	"/" + commandHelp + " - Показать список доступных команд"

const privacyText = "Наш бот собирает только ваш Telegram ID и информацию об интересах " +
	"для формирования рекомендаций музеев. Персональные данные " +
	"(имя, фамилия, телефон и др.) не запрашиваются и не сохраняются. " +
	"При работе с AI-моделью передаются только ваши интересы в обезличенном виде, " +
	"без привязки к личной идентификации."

const (
	chooseCategoryText   = "Выберите категорию интересов:"
	noInterestsYetText   = "У вас пока нет сохраненных интересов."
	noSelectedText       = "У вас пока нет выбранных интересов."
	askCityText          = "Пожалуйста, напишите название города, по которому осуществить поиск " +
		"(города России, например: Москва):"
	emptyCityText        = "Название города не должно быть пустым. Попробуйте еще раз:"
	searchCancelledText  = "Поиск музеев отменен."
	removeCancelledText  = "Операция удаления отменена."
	chooseRemoveText     = "Выберите интерес для удаления:"
	unknownCommandText   = "Я не понимаю, что вы имеете в виду. " +
		"Пожалуйста, используйте одну из доступных команд."
	genericFailureText   = "Произошла непредвиденная ошибка, попробуйте позже."
	descriptionsFailText = "Не получилось подготовить описания музеев, попробуйте позже."

	selectInterestsFirstText = "У вас пока нет выбранных интересов. " +
		"Пожалуйста, сначала выберите интересы с помощью команды /" + commandSelectInterests +
		", чтобы я мог вам что-то порекомендовать."
)
