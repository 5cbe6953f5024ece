package msa

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/models"
)

// Aligner startet MUSCLE als externen Prozess (FASTA über stdin/stdout).
type Aligner struct {
	Path   string
	Logger *zap.Logger
}

func NewAligner(path string, logger *zap.Logger) *Aligner {
	return &Aligner{Path: path, Logger: logger}
}

// Align liefert die ausgerichteten Sequenzen in der Reihenfolge der MUSCLE-Ausgabe.
func (a *Aligner) Align(ctx context.Context, sequences []models.Sequence) ([]Record, error) {
	var stdin, stdout, stderr bytes.Buffer
	if err := WriteFASTA(&stdin, sequences); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, a.Path, "-quiet")
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		a.Logger.Error("muscle failed",
			zap.String("path", a.Path),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
			zap.Error(err))
		return nil, apperrors.Upstream("run muscle", err)
	}

	records, err := ParseFASTA(&stdout)
	if err != nil {
		return nil, apperrors.Upstream("parse muscle output", err)
	}
	a.Logger.Info("Alignment finished", zap.Int("sequences", len(records)))
	return records, nil
}
