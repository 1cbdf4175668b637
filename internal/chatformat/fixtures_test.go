package chatformat

import "testing"

const (
	sampleSystem = "You are an AI assistant. User will you give you a task. " +
		"Your goal is to complete the task as faithfully as you can. While performing " +
		"the task think step-by-step and justify your steps."
	sampleUser = "Please briefly summarize this news article:\n\nAOL.com Video - Father Lets 8-Year-Old " +
		"Drive On Icy Road\n\nDescription:Would you let your 8-year-old drive your car? " +
		"How about on an icy road? Well one father in Russia did just that, and recorded " +
		"the entire thing. To her credit, the child seemed to be doing a great job. " +
		"(0:44)\n\nTags: 8-year-old driver , caught on camera , child driver , pix11\n\n" +
		"Summary:"
	sampleAssistant = "A father in Russia allowed his 8-year-old child to drive his car on an " +
		"icy road and recorded the event. The child appeared to be handling the situation well, " +
		"showcasing their driving skills despite the challenging conditions."
)

func messageSample() []Message {
	return []Message{
		{Role: RoleSystem, Content: sampleSystem},
		{Role: RoleUser, Content: sampleUser},
		{Role: RoleAssistant, Content: sampleAssistant},
	}
}

func trackCaloriesTool() ToolDefinition {
	return ToolDefinition{
		Name:        "track_calories",
		Description: "Track daily calorie intake",
		Parameters: ParameterSchema{
			Type: "object",
			Properties: Properties{
				{Name: "meal", Type: "string", Description: "The meal for which calories are being tracked"},
				{Name: "calories", Type: "number", Description: "The number of calories consumed"},
				{Name: "date", Type: "string", Format: "date", Description: "The date for which calories are being tracked"},
			},
			Required: []string{"meal", "calories", "date"},
		},
	}
}

func toolMessageSample() []Message {
	return []Message{
		{Role: RoleSystem, Tools: []ToolDefinition{trackCaloriesTool()}},
		{Role: RoleUser, Content: "Hi, I had a pizza for lunch today which was about 800 calories. Can you track this for me?"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{{
			ID:        "bDJIuDPjc",
			Name:      "track_calories",
			Arguments: `{"meal": "pizza", "calories": 800, "date": "2022-03-01"}`,
		}}},
		{Role: RoleTool, ToolResult: &ToolResult{
			Status:  "success",
			Message: "Calories for your pizza meal have been successfully tracked for the date 2022-03-01",
		}},
		{Role: RoleAssistant, Content: "Great! The calories for your pizza meal have been successfully tracked for today."},
	}
}

func assertDialogueEqual(t *testing.T, got, want []Message) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dialogue length: got %d want %d\ngot: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Role != want[i].Role {
			t.Fatalf("message %d role: got %q want %q", i, got[i].Role, want[i].Role)
		}
		if got[i].Content != want[i].Content {
			t.Fatalf("message %d content:\ngot:  %q\nwant: %q", i, got[i].Content, want[i].Content)
		}
	}
}
