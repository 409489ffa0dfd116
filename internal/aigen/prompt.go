package aigen

import "fmt"

const (
	defaultNumQuestions = 5
	maxNumQuestions     = 10
	defaultDifficulty   = "medium"
)

// buildPrompt asks for a raw JSON array so the response can be decoded
// without scraping markdown. Models still wrap it in fences often
// enough that extractCandidates strips them anyway.
func buildPrompt(topic string, numQuestions int, difficulty, instructions string) string {
	return fmt.Sprintf(`Act as an expert teacher. Create %d multiple-choice questions.

Topic: %q
Difficulty: %s
Context/Instructions: %q

CRITICAL RULES:
1. If instructions are provided, prioritize them.
2. Provide 4 distinct options per question.
3. Return ONLY a raw JSON array. NO markdown.

Required JSON Structure:
[
    {
        "question_text": "Question string?",
        "options": ["A", "B", "C", "D"],
        "correct_option_index": 0,
        "explanation": "Brief explanation."
    }
]`, numQuestions, topic, difficulty, instructions)
}

func clampCount(n int) int {
	if n <= 0 {
		return defaultNumQuestions
	}
	if n > maxNumQuestions {
		return maxNumQuestions
	}
	return n
}
