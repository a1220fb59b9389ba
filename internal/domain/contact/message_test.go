package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageInput_Validate(t *testing.T) {
	in := MessageInput{Name: " A ", Email: "a@b.com", Message: "hi"}
	require.NoError(t, in.Validate())
	assert.Equal(t, " A ", in.Name)

	in = MessageInput{Name: "A", Email: "a-at-b", Message: "hi"}
	assert.EqualError(t, in.Validate(), "email must be a valid email address")

	in = MessageInput{Name: "A", Email: "a@b.com", Message: "   "}
	assert.EqualError(t, in.Validate(), "message is required")
}
