// Command speak runs an utterance through a speech backend and prints the
// word boundaries as they fire. With the default mock backend it is a
// playground for the timing simulation; on Windows it can drive SAPI.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektralhq/speech"
	"github.com/spektralhq/speech/engines"
	"github.com/spektralhq/speech/track"

	// Registered backends.
	_ "github.com/spektralhq/speech/engines/android"
	_ "github.com/spektralhq/speech/engines/mock"
	_ "github.com/spektralhq/speech/engines/sapi"
)

var (
	configFile string
	debug      bool
	listVoices bool

	wordStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var rootCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Speak text through a speech backend",
	Long: "Speak runs text through a speech backend and prints each word\n" +
		"boundary as the engine reaches it. Reads text from arguments or stdin.",
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (yaml)")
	flags.BoolVar(&debug, "debug", false, "debug logging")
	flags.BoolVar(&listVoices, "list-voices", false, "list voices and exit")
	flags.String("backend", "", "backend to use (default mock)")
	flags.Float64("rate", 0, "playback rate, -1 to 1")
	flags.Float64("pitch", 0, "voice pitch, -1 to 1")
	flags.Float64("volume", 1.0, "volume, 0 to 1")
	flags.String("locale", "", "locale (BCP 47), e.g. en-GB")
	flags.String("voice", "", "voice name")

	for _, name := range []string{"backend", "rate", "pitch", "volume", "locale", "voice"} {
		if err := viper.BindPFlag("speech."+name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := speech.LoadConfigFromViper()
	if err != nil {
		return err
	}
	log.Debug("configured", "backend", cfg.Backend, "rate", cfg.Rate)

	engine, err := engines.New(cfg)
	if err != nil {
		return err
	}

	if listVoices {
		return printVoices(engine)
	}

	text := strings.Join(args, " ")
	if text == "" {
		raw, err := readStdin()
		if err != nil {
			return err
		}
		text = raw
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to speak")
	}

	return speak(engine, text)
}

// speak says text and renders each word boundary until the engine returns
// to ready.
func speak(engine speech.Engine, text string) error {
	tracker := track.New()
	tracker.Attach(engine)
	tracker.Mark(text)

	done := make(chan struct{})
	failed := make(chan error, 1)

	engine.OnWordBoundary(func(b speech.Boundary) {
		renderBoundary(text, b)
	})
	engine.OnStateChange(func(s speech.State) {
		if s == speech.StateReady {
			close(done)
		}
	})
	engine.OnError(func(err *speech.EngineError) {
		select {
		case failed <- err:
		default:
		}
	})

	fmt.Println(text)
	engine.Say(text)

	select {
	case <-done:
		log.Debug("finished", "words", tracker.Words())
		return nil
	case err := <-failed:
		return err
	}
}

// renderBoundary prints a caret line under the word being spoken.
func renderBoundary(text string, b speech.Boundary) {
	runes := []rune(text)
	if b.End() > len(runes) {
		return
	}
	prefix := string(runes[:b.Start])
	word := string(runes[b.Start:b.End()])
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	carets := strings.Repeat("^", runewidth.StringWidth(word))
	fmt.Printf("%s%s %s\n",
		pad,
		wordStyle.Render(carets),
		caretStyle.Render(fmt.Sprintf("(%d,%d)", b.Start, b.Length)))
}

func printVoices(engine speech.Engine) error {
	for _, locale := range engine.AvailableLocales() {
		if err := engine.SetLocale(locale); err != nil {
			continue
		}
		fmt.Println(locale.String())
		for _, v := range engine.AvailableVoices() {
			fmt.Printf("  %s\n", v)
		}
	}
	return nil
}

func readStdin() (string, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("speak failed", "err", err)
		os.Exit(1)
	}
}
