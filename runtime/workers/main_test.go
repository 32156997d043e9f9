package workers

import (
	"os"
	"testing"

	"chat-relay/observability"
)

func TestMain(m *testing.M) {
	observability.Init()
	os.Exit(m.Run())
}
