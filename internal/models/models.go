package models

// Interest is a controlled-vocabulary label. Reference data, seeded once
// from the taxonomy; interest_name is unique.
type Interest struct {
	ID   int64  `json:"interest_id"`
	Name string `json:"interest_name"`
}

// Museum is static reference data loaded out-of-band from the venue CSV.
type Museum struct {
	ID          int64  `json:"museum_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	City        string `json:"city"`
	Address     string `json:"address"`
}

// RankedMuseum is a museum that survived interest filtering, with the
// interests it shares with the user.
type RankedMuseum struct {
	Museum
	MatchCount   int      `json:"match_count"`
	MatchedNames []string `json:"matched_names"`
}
