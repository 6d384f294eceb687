package encouragement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// Manager holds the pool of short encouragement lines shown on the home
// screen next to the daily insights.
type Manager struct {
	Lines []string
}

func NewManager(linesCsvReader *csv.Reader) (*Manager, error) {
	m := &Manager{}

	log.Println("reading encouragement lines CSV ...")

	linesCsvReader.Comma = ';'
	for {
		record, err := linesCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 1 {
			return nil, fmt.Errorf("record [%s] does not have 1 element", record)
		}
		m.Lines = append(m.Lines, record[0])
	}

	if len(m.Lines) == 0 {
		return nil, errors.New("no encouragement lines found")
	}

	log.Printf("encouragement lines CSV read %d lines", len(m.Lines))

	return m, nil
}

func (m *Manager) RandomLine() string {
	index := rand.Float64() * float64(len(m.Lines))
	return m.Lines[int(index)]
}
