package services

import (
	"context"

	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/database"
	"ptm-api/evidence"
	"ptm-api/models"
	"ptm-api/msa"
)

// Sequences liefert die Sequenzen aller Formen von id.
func (s *PTMService) Sequences(ctx context.Context, id string) ([]models.Sequence, error) {
	var seqs []models.Sequence
	err := s.DB.Query(ctx, database.SequencesQuery(s.DB.Engine()), []any{id}, func(row database.Row) error {
		var seq models.Sequence
		seq.ID, _ = row.String("id")
		seq.Sequence, _ = row.String("sequence")
		seqs = append(seqs, seq)
		return nil
	})
	return seqs, err
}

// Decorations fasst die Zeilen einer Stelle pro (PTM-Typ, Quelle) zusammen.
func (s *PTMService) Decorations(ctx context.Context, form string, position int64, residue string) ([]models.Decoration, error) {
	out := []models.Decoration{}
	var lastSource string
	args := []any{form, position, residue}
	err := s.DB.Query(ctx, database.DecorationsQuery(s.DB.Engine()), args, func(row database.Row) error {
		ptm, _ := row.String("event_name")
		code, _ := row.String("source_label")
		if n := len(out); n == 0 || out[n-1].PTMType != ptm || lastSource != code {
			out = append(out, models.Decoration{
				PTMType: ptm,
				Source:  sourceOf(row, "source_label"),
				Enzymes: []models.Entity{},
				PMIDs:   []string{},
			})
			lastSource = code
		}
		d := &out[len(out)-1]

		var enz models.Entity
		enz.UniprotID, _ = row.String("enz_code")
		enz.Name, _ = row.String("enz_symbol")
		if enz.Name != "" && !containsEntity(d.Enzymes, enz) {
			d.Enzymes = append(d.Enzymes, enz)
		}
		raw, _ := row.String("pmids")
		d.PMIDs = evidence.Dedupe(append(d.PMIDs, evidence.SplitPMIDs(raw)...))
		return nil
	})
	return out, err
}

func containsEntity(list []models.Entity, e models.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// AlignmentService richtet alle Formen eines Proteins aus und dekoriert die Spalten.
type AlignmentService struct {
	PTM     *PTMService
	Aligner *msa.Aligner
	Workers int
	Logger  *zap.Logger
}

func NewAlignmentService(ptm *PTMService, aligner *msa.Aligner, workers int, logger *zap.Logger) *AlignmentService {
	return &AlignmentService{PTM: ptm, Aligner: aligner, Workers: workers, Logger: logger}
}

func (a *AlignmentService) Align(ctx context.Context, id string) ([]models.Alignment, error) {
	seqs, err := a.PTM.Sequences(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, apperrors.NotFoundf("no sequences for %s", id)
	}

	records, err := a.Aligner.Align(ctx, seqs)
	if err != nil {
		return nil, err
	}

	alignments, err := msa.Decorate(ctx, records, a.PTM, a.Workers)
	if err != nil {
		a.Logger.Error("Alignment decoration failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return alignments, nil
}
