// AngelaMos | 2026
// repository_test.go

package post

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

func TestMapWriteError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "slug collision",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: slugConstraint},
			want: ErrSlugTaken,
		},
		{
			name: "wrapped slug collision",
			in:   fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"}),
			want: ErrSlugTaken,
		},
		{
			name: "missing author",
			in:   &pgconn.PgError{Code: "23503", ConstraintName: "posts_author_id_fkey"},
			want: core.ErrNotFound,
		},
		{
			name: "passthrough",
			in:   plain,
			want: plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError(tt.in), tt.want)
		})
	}
}

func TestMapWriteErrorOtherUniqueConstraint(t *testing.T) {
	err := mapWriteError(&pgconn.PgError{Code: "23505", ConstraintName: "posts_pkey"})
	assert.NotErrorIs(t, err, ErrSlugTaken)
	assert.NotErrorIs(t, err, core.ErrDuplicateKey)
}
