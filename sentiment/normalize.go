package sentiment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

var (
	markupRE   = regexp.MustCompile(`<[^>]*>`)
	nonAlphaRE = regexp.MustCompile(`[^a-z\s]`)
)

// A Normalizer maps raw review text onto the cleaned form the vectorizer
// consumes. Construction loads the English sentence model and the
// lemmatizer dictionary once; Normalize itself is a pure transform and
// safe for concurrent use.
type Normalizer struct {
	segmenter  *sentences.DefaultSentenceTokenizer
	lemmatizer *golem.Lemmatizer
}

// NewNormalizer loads the language resources backing the pipeline.
func NewNormalizer() (*Normalizer, error) {
	segmenter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading sentence tokenizer: %w", err)
	}
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading lemmatizer: %w", err)
	}
	return &Normalizer{segmenter: segmenter, lemmatizer: lemmatizer}, nil
}

// Normalize cleans a single text string:
//
//  1. remove angle-bracket markup spans
//  2. lowercase
//  3. drop every character outside [a-z] and whitespace
//  4. tokenize into words (sentence segmentation, then fields)
//  5. remove English stopwords
//  6. lemmatize each remaining token
//  7. rejoin with single spaces
//
// Dropping all punctuation also strips negation contractions ("don't"
// loses its "n't"); the trained model inherits that quirk on purpose.
// Empty input yields empty output.
func (n *Normalizer) Normalize(raw string) string {
	text := markupRE.ReplaceAllString(raw, "")
	text = strings.ToLower(text)
	text = nonAlphaRE.ReplaceAllString(text, "")

	var words []string
	for _, sent := range n.segmenter.Tokenize(text) {
		words = append(words, strings.Fields(sent.Text)...)
	}

	kept := make([]string, 0, len(words))
	for _, word := range words {
		if isStopword(word) {
			continue
		}
		// Lemmatization can land on a stopword ("seen" -> "see"); filter
		// the lemma too so normalization is idempotent.
		lemma := n.lemmatizer.Lemma(word)
		if isStopword(lemma) {
			continue
		}
		kept = append(kept, lemma)
	}
	return strings.Join(kept, " ")
}

func isStopword(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
}
