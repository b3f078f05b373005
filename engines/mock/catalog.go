package mock

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/spektralhq/speech"
)

// Static locale/voice catalog. Voice IDs are "<bcp47>-<n>" so a voice's
// locale can be recovered from its identifier alone.

var catalogLocales = []language.Tag{
	language.BritishEnglish,
	language.MustParse("nb-NO"),
	language.MustParse("fi-FI"),
}

type voiceDef struct {
	name   string
	gender speech.Gender
}

var catalogVoices = map[string][]voiceDef{
	"en-GB": {{"Bob", speech.GenderMale}, {"Anne", speech.GenderFemale}},
	"nb-NO": {{"Eivind", speech.GenderMale}, {"Kjersti", speech.GenderFemale}},
	"fi-FI": {{"Kari", speech.GenderMale}, {"Anneli", speech.GenderFemale}},
}

// AvailableLocales lists the catalog locales.
func (e *Engine) AvailableLocales() []language.Tag {
	locales := make([]language.Tag, len(catalogLocales))
	copy(locales, catalogLocales)
	return locales
}

// AvailableVoices lists the voices for the current locale.
func (e *Engine) AvailableVoices() []speech.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return voicesFor(e.locale)
}

func voicesFor(locale language.Tag) []speech.Voice {
	defs := catalogVoices[locale.String()]
	voices := make([]speech.Voice, 0, len(defs))
	for i, def := range defs {
		voices = append(voices, speech.Voice{
			Name:   def.name,
			Locale: locale,
			Gender: def.gender,
			Age:    speech.AgeAdult,
			ID:     fmt.Sprintf("%s-%d", locale, i+1),
		})
	}
	return voices
}

func catalogHasLocale(locale language.Tag) bool {
	for _, tag := range catalogLocales {
		if tag.String() == locale.String() {
			return true
		}
	}
	return false
}

func containsVoice(voices []speech.Voice, voice speech.Voice) bool {
	for _, v := range voices {
		if v.Equal(voice) {
			return true
		}
	}
	return false
}
