// Package dictionary loads and normalizes word lists into the legal-word
// list the solver works from.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"lukechampine.com/frand"

	"github.com/domino14/wordlebot/cache"
	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/word"
)

//go:embed words.txt
var builtinWords string

var (
	ErrEmptyDictionary = errors.New("no usable 5-letter words in word list")
	ErrUnknownEncoding = errors.New("unknown word list encoding")
)

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

// Dictionary is an immutable, sorted, duplicate-free list of words.
type Dictionary struct {
	words []word.Word
	index map[word.Word]struct{}
	// lines read and lines rejected, for logging
	read     int
	rejected int
}

type options struct {
	encoding string
}

type Option func(*options)

// WithEncoding sets the input encoding, EncodingUTF8 (default) or
// EncodingLatin1.
func WithEncoding(enc string) Option {
	return func(o *options) {
		o.encoding = strings.ToLower(enc)
	}
}

// Load reads one word per line. Each line is trimmed, stripped of
// diacritics and uppercased; anything that is not then exactly five
// letters A-Z is dropped. The result is deduplicated and sorted.
func Load(r io.Reader, opts ...Option) (*Dictionary, error) {
	o := &options{encoding: EncodingUTF8}
	for _, opt := range opts {
		opt(o)
	}
	switch o.encoding {
	case EncodingUTF8, "utf8", "":
	case EncodingLatin1, "latin1", "latin-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, o.encoding)
	}
	// Decompose, drop combining marks, recompose: "CAFÉS" becomes "CAFES".
	r = transform.NewReader(r, transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC))

	d := &Dictionary{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.read++
		w, err := word.New(strings.ToUpper(line))
		if err != nil {
			d.rejected++
			continue
		}
		d.words = append(d.words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	d.words = lo.Uniq(d.words)
	slices.Sort(d.words)
	if len(d.words) == 0 {
		return nil, ErrEmptyDictionary
	}
	d.index = make(map[word.Word]struct{}, len(d.words))
	for _, w := range d.words {
		d.index[w] = struct{}{}
	}
	log.Debug().Int("read", d.read).Int("rejected", d.rejected).Int("words", len(d.words)).
		Str("fingerprint", d.Fingerprint()).Msg("loaded-dictionary")
	return d, nil
}

// LoadFile loads a word list from disk.
func LoadFile(path string, opts ...Option) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Default returns the built-in word list.
func Default() *Dictionary {
	d, err := Load(strings.NewReader(builtinWords))
	if err != nil {
		panic(err)
	}
	return d
}

var loaded = cache.New[*Dictionary]()

// FromConfig loads the word list named in cfg, or the built-in one when
// none is set. Lists are parsed once and shared until the file changes.
func FromConfig(cfg *config.Config) (*Dictionary, error) {
	path := cfg.GetString(config.ConfigWordList)
	if path == "" {
		return loaded.Get("builtin", func(string) (*Dictionary, error) {
			return Default(), nil
		})
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	enc := cfg.GetString(config.ConfigWordListEncoding)
	key := fmt.Sprintf("%s|%s|%d|%d", path, enc, fi.Size(), fi.ModTime().UnixNano())
	return loaded.Get(key, func(string) (*Dictionary, error) {
		return LoadFile(path, WithEncoding(enc))
	})
}

// FromWords builds a dictionary from words that are already normalized.
func FromWords(ws []word.Word) (*Dictionary, error) {
	var sb strings.Builder
	for _, w := range ws {
		sb.WriteString(string(w))
		sb.WriteByte('\n')
	}
	return Load(strings.NewReader(sb.String()))
}

// Words returns the sorted word list. Callers must not modify it.
func (d *Dictionary) Words() []word.Word {
	return d.words
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

func (d *Dictionary) Contains(w word.Word) bool {
	_, ok := d.index[w]
	return ok
}

// Rejected is the number of non-blank lines that were not usable words.
func (d *Dictionary) Rejected() int {
	return d.rejected
}

// Fingerprint is a short hash of the word list, so that runs against
// different lists are not compared by accident.
func (d *Dictionary) Fingerprint() string {
	var sb strings.Builder
	sb.Grow(len(d.words) * (word.Length + 1))
	for _, w := range d.words {
		sb.WriteString(string(w))
		sb.WriteByte('\n')
	}
	return strconv.FormatUint(xxhash.Sum64String(sb.String()), 16)
}

// Random returns a uniformly chosen word.
func (d *Dictionary) Random() word.Word {
	return d.words[frand.Intn(len(d.words))]
}

// Sample returns n distinct words chosen at random, in random order. If n
// is at least the dictionary size, every word is returned, shuffled.
func (d *Dictionary) Sample(n int) []word.Word {
	ws := slices.Clone(d.words)
	frand.Shuffle(len(ws), func(i, j int) {
		ws[i], ws[j] = ws[j], ws[i]
	})
	if n >= 0 && n < len(ws) {
		ws = ws[:n]
	}
	return ws
}
