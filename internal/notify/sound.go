package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/phase"
)

var errInvalidSoundFormat = &apperr.Error{
	Message: "sound file %q must be in mp3, ogg, flac or wav format",
}

// ErrInvalidSoundFormat is returned for sound files with an unsupported
// extension.
var ErrInvalidSoundFormat = errInvalidSoundFormat

// SoundExtensions lists the supported sound file extensions.
var SoundExtensions = []string{".mp3", ".ogg", ".flac", ".wav"}

// speakerMu serialises use of the process-wide speaker.
var speakerMu sync.Mutex

// playStream is swapped in tests that have no audio device.
var playStream = play

// Sound plays an audio file once.
type Sound struct {
	Path string
}

// ValidateSound checks that path has a supported extension.
func ValidateSound(path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	for _, v := range SoundExtensions {
		if ext == v {
			return nil
		}
	}

	return errInvalidSoundFormat.Fmt(path)
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		err = errInvalidSoundFormat.Fmt(path)
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

// Notify plays the sound and blocks until it finishes. Overlapping calls
// take turns.
func (snd *Sound) Notify(_ context.Context, _ phase.State) error {
	if snd.Path == "" {
		return nil
	}

	speakerMu.Lock()
	defer speakerMu.Unlock()

	stream, format, err := decode(snd.Path)
	if err != nil {
		return err
	}

	defer stream.Close()

	return playStream(stream, format)
}

func play(stream beep.Streamer, format beep.Format) error {
	bufferSize := 10

	err := speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Second/time.Duration(bufferSize)),
	)
	if err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}
