// Package msa ruft MUSCLE auf und dekoriert das Alignment mit PTM-Annotationen.
package msa

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ptm-api/models"
)

// Record ist ein FASTA-Eintrag; ID ist das erste Wort der Kopfzeile.
type Record struct {
	ID  string
	Seq string
}

// ParseFASTA liest alle Einträge. Sequenzzeilen werden verkettet.
func ParseFASTA(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var records []Record
	var current *Record
	var seq strings.Builder
	flush := func() {
		if current != nil {
			current.Seq = seq.String()
			records = append(records, *current)
		}
		seq.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("fasta: empty header in record %d", len(records)+1)
			}
			current = &Record{ID: fields[0]}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("fasta: sequence data before first header")
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return records, nil
}

// WriteFASTA schreibt die Sequenzen als Eingabe für MUSCLE.
func WriteFASTA(w io.Writer, sequences []models.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, s := range sequences {
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", s.ID, s.Sequence); err != nil {
			return err
		}
	}
	return bw.Flush()
}
