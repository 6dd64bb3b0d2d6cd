package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

// CylinderFinder is the lookup surface ScanResolver needs.
type CylinderFinder interface {
	FindBySequentialNumber(ctx context.Context, n int64) (*cylinder.Cylinder, error)
	FindByLabelToken(ctx context.Context, token kernel.LabelToken) (*cylinder.Cylinder, error)
}

// ScanToken is a scanned or typed cylinder reference split into its two
// possible readings.
type ScanToken struct {
	// SequentialNumber is positive when the input reads as a display number
	// once leading '#' and '0' characters are dropped.
	SequentialNumber int64

	// Label is the normalized label reading of the raw input.
	Label kernel.LabelToken
}

// ParseScanToken reads raw both as a sequential number ("7", "0007", "#0007")
// and as a label token. Blank input fails with errs.ErrValueIsRequired.
func ParseScanToken(raw string) (ScanToken, error) {
	label, err := kernel.NewLabelToken(raw)
	if err != nil {
		return ScanToken{}, err
	}

	token := ScanToken{Label: label}

	digits := strings.TrimLeft(strings.TrimSpace(raw), "#0")
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil && n > 0 {
		token.SequentialNumber = n
	}

	return token, nil
}

// ScanResolver finds the cylinder a scanned token refers to. The sequential
// number reading wins over the label reading, so "#0007" resolves to cylinder
// number 7 even when another cylinder is labelled "0007".
//
// Example:
//
//	c, err := services.NewScanResolver().Resolve(ctx, "#0007", uow.CylinderRepository())
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // Nothing matches either reading
//	}
type ScanResolver struct{}

func NewScanResolver() ScanResolver {
	return ScanResolver{}
}

// Resolve looks the token up by sequential number first and falls back to the
// label token. It fails with errs.ErrObjectNotFound when neither matches.
func (r ScanResolver) Resolve(ctx context.Context, raw string, finder CylinderFinder) (*cylinder.Cylinder, error) {
	token, err := ParseScanToken(raw)
	if err != nil {
		return nil, err
	}

	if token.SequentialNumber > 0 {
		c, err := finder.FindBySequentialNumber(ctx, token.SequentialNumber)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	c, err := finder.FindByLabelToken(ctx, token.Label)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause("cylinder", token.Label.String(), err)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}
