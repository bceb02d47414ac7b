package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/rider-parser/internal/common"
)

func TestNew(t *testing.T) {
	ex, err := New(context.Background(), common.LLMConfig{Provider: common.ProviderNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, ex)

	ex, err = New(context.Background(), common.LLMConfig{Provider: common.ProviderOpenAI, BaseURL: "http://localhost:11434/v1"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, ex)

	ex, err = New(context.Background(), common.LLMConfig{Provider: common.ProviderAnthropic, APIKey: "k", RequestsPerMinute: 30}, nil)
	require.NoError(t, err)
	assert.NotNil(t, ex)

	_, err = New(context.Background(), common.LLMConfig{Provider: "cohere"}, nil)
	require.Error(t, err)
	assert.Equal(t, common.CodeConfig, common.CodeOf(err))
}
