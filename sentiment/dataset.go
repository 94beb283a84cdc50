package sentiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadDataset reads a labeled review CSV. The header must contain
// `review` and `sentiment` columns; anything else fails fast with a
// DataLoadError.
func LoadDataset(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "file not found or unreadable"}
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "missing header row"}
	}

	reviewCol, sentimentCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "review":
			reviewCol = i
		case "sentiment":
			sentimentCol = i
		}
	}
	if reviewCol < 0 || sentimentCol < 0 {
		return nil, &DataLoadError{
			Path:   path,
			Reason: `header must contain "review" and "sentiment" columns`,
		}
	}

	var reviews []Review
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Path: path, Reason: fmt.Sprintf("malformed row: %v", err)}
		}
		reviews = append(reviews, Review{
			Text:      record[reviewCol],
			Sentiment: strings.ToLower(strings.TrimSpace(record[sentimentCol])),
		})
	}
	if len(reviews) == 0 {
		return nil, &DataLoadError{Path: path, Reason: "no data rows"}
	}
	return reviews, nil
}
