package quiz

import "time"

// Default is the React fundamentals quiz linked from the course pages.
var Default = &Quiz{
	ID:        "react-fundamentals",
	Title:     "React Fundamentals",
	TimeLimit: 30 * time.Minute,
	Questions: []Question{
		{
			ID:            "q1",
			Question:      "What is the virtual DOM?",
			Options:       []string{"A browser API", "An in-memory representation of the real DOM", "A CSS framework", "A database"},
			CorrectAnswer: 1,
			Explanation:   "The virtual DOM is a lightweight copy of the real DOM that React diffs to compute minimal updates.",
		},
		{
			ID:            "q2",
			Question:      "Which hook manages local component state?",
			Options:       []string{"useEffect", "useContext", "useState", "useRef"},
			CorrectAnswer: 2,
			Explanation:   "useState returns the current state and a setter for it.",
		},
		{
			ID:            "q3",
			Question:      "What must a list item rendered from an array carry?",
			Options:       []string{"A unique key", "An id attribute", "A className", "Nothing"},
			CorrectAnswer: 0,
			Explanation:   "Keys let React match items between renders.",
		},
		{
			ID:            "q4",
			Question:      "When does an effect with an empty dependency array run?",
			Options:       []string{"On every render", "Never", "After the first render only", "Before the first render"},
			CorrectAnswer: 2,
			Explanation:   "An empty array means the effect has no dependencies that could trigger it again.",
		},
		{
			ID:            "q5",
			Question:      "How do you pass data from a parent to a child component?",
			Options:       []string{"Through props", "Through global variables", "Through the URL", "Through refs only"},
			CorrectAnswer: 0,
			Explanation:   "Props are the inputs of a component.",
		},
	},
}
