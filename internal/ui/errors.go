package ui

import (
	"errors"
	"fmt"

	"github.com/bamsammich/fixity/internal/core"
	"github.com/bamsammich/fixity/internal/digest"
)

// ErrorMessage turns an error from the checker into a one-line message for
// the operator. Each kind and phase reads differently.
func ErrorMessage(err error) string {
	var e *core.Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case core.KindNotFound:
		if e.Phase == core.PhaseRecord {
			return fmt.Sprintf("checksum record %s does not exist; run save first", e.Path)
		}
		return fmt.Sprintf("file %s does not exist", e.Path)
	case core.KindEmptyRecord:
		return fmt.Sprintf("checksum record %s is empty", e.Path)
	case core.KindAlgorithmUnavailable:
		return fmt.Sprintf("%s digest algorithm is not available on this platform", digest.Algorithm)
	case core.KindIO:
		if e.Phase == core.PhaseRecord {
			if e.Op == "save" {
				return fmt.Sprintf("could not write checksum record %s: %v", e.Path, e.Err)
			}
			return fmt.Sprintf("could not read checksum record %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
	default:
		return err.Error()
	}
}
