package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"quizzle/internal/domain"
)

// DirSource reads {YYYY-MM-DD}.json, falling back to {YYYY-MM-DD}.yaml, from a filesystem.
type DirSource struct {
	fsys fs.FS
}

func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

func (s *DirSource) FetchQuestions(_ context.Context, date time.Time) (domain.QuestionFile, error) {
	name := date.Format(domain.DateLayout)

	for _, file := range []string{name + ".json", name + ".yaml"} {
		data, err := fs.ReadFile(s.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.QuestionFile{}, fmt.Errorf("read %s: %w", file, err)
		}
		return Decode(file, data)
	}
	return domain.QuestionFile{}, domain.ErrQuestionSetNotFound
}

// Decode parses a question file, choosing YAML for .yaml/.yml names and JSON otherwise.
func Decode(name string, data []byte) (domain.QuestionFile, error) {
	var (
		file domain.QuestionFile
		err  error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return domain.QuestionFile{}, fmt.Errorf("%w: %s: %v", domain.ErrMalformedQuestionSet, name, err)
	}
	return file, nil
}
