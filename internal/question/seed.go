package question

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Text       string   `yaml:"text"`
	Answers    []string `yaml:"answers"`
	Correct    string   `yaml:"correct"`
	Difficulty int      `yaml:"difficulty"`
	Type       string   `yaml:"type"`
}

// LoadSeedFile reads a YAML question bank from disk.
func LoadSeedFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML question bank. Entries without a type are PREDEFINED.
func ParseSeed(data []byte) ([]Question, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	out := make([]Question, 0, len(file.Questions))
	for i, sq := range file.Questions {
		qType := TypePredefined
		if sq.Type != "" {
			parsed, err := ParseType(sq.Type)
			if err != nil {
				return nil, fmt.Errorf("seed question #%d: %w", i+1, err)
			}
			qType = parsed
		}
		out = append(out, Question{
			Text:            sq.Text,
			PossibleAnswers: sq.Answers,
			CorrectAnswer:   sq.Correct,
			DifficultyLevel: sq.Difficulty,
			Type:            qType,
		})
	}
	return out, nil
}
