package translate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"linguachat/backend/internal/translate"
)

func TestNoop_SameLanguageIsIdentity(t *testing.T) {
	tr := translate.NewNoop()
	inputs := []string{"hello", "", "¿Qué tal? 你好 \x00\xff", "a\nb\tc"}
	for _, in := range inputs {
		for _, lang := range []string{"en", "es", "zh", "xx"} {
			assert.Equal(t, in, tr.Translate(context.Background(), in, lang, lang))
		}
	}
}

func TestNoop_CrossLanguageIsPassthrough(t *testing.T) {
	tr := translate.NewNoop()
	assert.Equal(t, "hola", tr.Translate(context.Background(), "hola", "es", "en"))
	assert.Equal(t, "hello", tr.Translate(context.Background(), "hello", "en", "es"))
}
