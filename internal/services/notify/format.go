package notify

import "fmt"

// Format renders a line the way it appears in the coordination channel
func Format(in *NotifyInput) string {
	switch in.Source {
	case SourceEngine:
		return fmt.Sprintf("**[AUTO | %s]** %s", in.Sender, in.Text)
	case SourceLobby:
		return fmt.Sprintf("**[%s]** %s", in.Sender, in.Text)
	default:
		return in.Text
	}
}
