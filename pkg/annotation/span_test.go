package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanAnnotation_String(t *testing.T) {
	tests := []struct {
		name string
		span SpanAnnotation
		want string
	}{
		{"full", SpanAnnotation{RuleName: "BasicRule", Start: 0, End: 6, SplitValue: "。"}, "0-6/BasicRule/。"},
		{"absent split value", SpanAnnotation{RuleName: "BasicRule", Start: 2, End: 3}, "2-3/BasicRule/None"},
		{"absent rule", SpanAnnotation{Start: 1, End: 1}, "1-1/None/None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.span.String())
		})
	}
}

func TestSpanAnnotation_Int(t *testing.T) {
	s := SpanAnnotation{Start: 3, End: 11}
	assert.Equal(t, 11, s.Int())
	assert.Equal(t, 8, s.Len())
}

func TestSpanAnnotation_Token(t *testing.T) {
	_, ok := SpanAnnotation{}.Token()
	assert.False(t, ok)

	tok := NewTokenResult(nil, []string{"名詞", "一般"}, "テスト", "テスト")
	s := SpanAnnotation{Args: map[string]any{TokenArg: tok}}

	got, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "テスト", got.String())
	assert.True(t, got.IsFeature)
	assert.False(t, got.IsSurface)
}
