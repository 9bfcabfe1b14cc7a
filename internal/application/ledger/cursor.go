package ledger

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

// encodeCursor serializa la posición (timestamp, id) como token opaco
// base64url. El cliente no debe interpretarlo, solo devolverlo tal cual.
func encodeCursor(c repository.MovementCursor) string {
	raw := c.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor valida y deserializa un token de cursor.
func decodeCursor(token string) (*repository.MovementCursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("cursor inválido: %w", domain.ErrInvalidInput)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("cursor inválido: %w", domain.ErrInvalidInput)
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("cursor inválido: %w", domain.ErrInvalidInput)
	}
	return &repository.MovementCursor{Timestamp: ts, ID: parts[1]}, nil
}
