package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorRendersJapanese(t *testing.T) {
	tr := NewTranslator("ja")

	msg := tr.T("ja", "join.joined", map[string]any{"Title": "Apex Ranked Night"})
	assert.Contains(t, msg, "Apex Ranked Night")
	assert.Contains(t, msg, "参加しました")
}

func TestTranslatorRendersEnglish(t *testing.T) {
	tr := NewTranslator("ja")

	msg := tr.T("en", "join.waitlisted", map[string]any{"Position": 3})
	assert.Contains(t, msg, "3")
	assert.Contains(t, msg, "waitlist")
}

func TestTranslatorFallsBackToDefaultLocale(t *testing.T) {
	tr := NewTranslator("ja")

	msg := tr.T("fr", "list.none", nil)
	assert.Equal(t, "募集中のイベントはありません。", msg)
}

func TestTranslatorUnknownKeyReturnsKey(t *testing.T) {
	tr := NewTranslator("ja")

	assert.Equal(t, "no.such.key", tr.T("ja", "no.such.key", nil))
	assert.Equal(t, "", tr.T("ja", "", nil))
}

func TestTranslatorBadDefaultLocaleFallsBackToJapanese(t *testing.T) {
	tr := NewTranslator("???")

	msg := tr.T("", "error.event_not_found", nil)
	assert.Equal(t, "イベントが見つかりません", msg)
}
