package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// SystemPrompt constrains answers to the retrieved context only.
	SystemPrompt = `You are a helpful assistant that answers questions based on the provided context.
                    Rules:
                    - Only use information from the context to answer
                    - If the context doesn't contain relevant information, say "Document has no information regarding this."
                    - Be concise and direct
                    - Do not use markdown formatting`

	// RAGPromptTemplate wraps the retrieved context and the raw question into
	// the single user turn sent to the generation model.
	RAGPromptTemplate = "Context:\n%s\n\nQuestion: %s"

	// ContextSeparator joins retrieved chunks, nearest first.
	ContextSeparator = "\n---\n"

	// ConversationTitleMaxLen bounds conversation titles in listings.
	ConversationTitleMaxLen = 50
)
