package llm

// Role identifies who produced a message in the conversation transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// Message is one turn of the transcript as sent to a provider.
type Message struct {
	Role         Role
	Content      string
	FunctionName string
}

// FunctionSchema describes one callable function to the model. Parameters is
// a JSON-schema object; providers translate it into their own tool format.
type FunctionSchema struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Request is the provider-independent chat request shape.
type Request struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message
	Functions   []FunctionSchema
}

// FunctionCall is a structured side-effect request emitted by the model
// instead of plain text.
type FunctionCall struct {
	Name      string
	Arguments map[string]interface{}
}

// Response is either plain text or a function invocation, never both.
// ConversationComplete is the structured end-of-call signal: set when the
// model invokes end_call rather than inferred from the reply wording.
type Response struct {
	Text                 string
	FunctionCall         *FunctionCall
	ConversationComplete bool
}
