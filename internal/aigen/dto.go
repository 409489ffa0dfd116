package aigen

type GenerateRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

type GenerateResponse struct {
	Status    string      `json:"status"`
	Questions []Candidate `json:"questions"`
}
