package classify

import "selectd/pkg/types"

// categoryExamples holds the curated sentences whose averaged embeddings
// form each category's centroid. Five per category, chosen to span the
// category's typical phrasings.
var categoryExamples = map[types.Category][]string{
	types.CategoryCoding: {
		"Write a function that parses a CSV file and returns structured records",
		"Debug this null pointer exception in my service handler",
		"Refactor this class to use dependency injection",
		"Implement a REST API endpoint for user registration",
		"Why does this SQL query return duplicate rows",
	},
	types.CategoryCreative: {
		"Write a short story about a lighthouse keeper who discovers a message in a bottle",
		"Compose a poem about the change of seasons",
		"Invent a fantasy world with its own system of magic",
		"Draft song lyrics about leaving home for the first time",
		"Describe a bustling market street in vivid sensory detail",
	},
	types.CategoryAnalytical: {
		"Analyze this sales data and identify the strongest quarterly trends",
		"Compare the tradeoffs between these two architectural approaches",
		"Evaluate the statistical significance of this experiment's results",
		"Break down the main cost drivers in this budget report",
		"Summarize the correlations present in this dataset",
	},
	types.CategoryReasoning: {
		"Solve this logic puzzle step by step showing your work",
		"Prove that the square root of two is irrational",
		"If all A are B and some B are C, what can we conclude about A and C",
		"Work through this multi-step word problem carefully",
		"Deduce who the culprit is from these four alibis",
	},
	types.CategoryConversational: {
		"Hi there, how has your day been going",
		"Hello! Nice to meet you, what should I call you",
		"Hey, just wanted to chat for a bit",
		"Good morning, how are you feeling today",
		"Thanks so much for the help yesterday",
	},
	types.CategoryGeneral: {
		"What is the capital of Australia",
		"Explain how photosynthesis works",
		"Tell me about the history of the printing press",
		"What are some good books on personal finance",
		"How long does it take to learn a new language",
	},
}
