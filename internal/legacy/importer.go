// AngelaMos | 2026
// importer.go

package legacy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

// Report counts what one run wrote. Rows that already existed are counted
// as written since the inserts are idempotent.
type Report struct {
	Accounts  int  `json:"accounts"`
	Mutes     int  `json:"mutes"`
	Posts     int  `json:"posts"`
	Comments  int  `json:"comments"`
	Likes     int  `json:"likes"`
	Packs     int  `json:"packs"`
	Emojis    int  `json:"emojis"`
	Reactions int  `json:"reactions"`
	Settings  bool `json:"settings"`
	Skipped   int  `json:"skipped"`
}

type Importer struct {
	source Source
	sink   Sink
	logger *slog.Logger
	now    func() time.Time
}

func NewImporter(source Source, sink Sink, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{source: source, sink: sink, logger: logger, now: time.Now}
}

// Run copies every collection in foreign-key order. A row that fails
// conversion or hits a constraint is logged and skipped; any other error
// stops the run.
func (im *Importer) Run(ctx context.Context) (*Report, error) {
	rep := &Report{}

	steps := []struct {
		name string
		fn   func(context.Context, *Report) error
	}{
		{"accounts", im.accounts},
		{"mutes", im.mutes},
		{"posts", im.posts},
		{"comments", im.comments},
		{"emoji packs", im.packs},
		{"emojis", im.emojis},
		{"reactions", im.reactions},
		{"settings", im.settings},
	}

	for _, step := range steps {
		if err := step.fn(ctx, rep); err != nil {
			return rep, fmt.Errorf("import %s: %w", step.name, err)
		}
		im.logger.Info("imported collection", "collection", step.name)
	}

	return rep, nil
}

func (im *Importer) accounts(ctx context.Context, rep *Report) error {
	docs, err := im.source.Users(ctx)
	if err != nil {
		return err
	}

	bans := make(map[string]string)
	for _, d := range docs {
		a, err := ToAccount(d)
		if err == nil {
			im.stamp(&a.CreatedAt, &a.UpdatedAt)
			err = im.sink.Account(ctx, a)
		}
		if ok, err := im.tally(err, "user", d.ID, &rep.Accounts, rep); !ok {
			return err
		}
		if a != nil && a.BannedBy != nil {
			bans[a.ID] = *a.BannedBy
		}
	}

	for id, by := range bans {
		if err := im.sink.LinkBan(ctx, id, by); err != nil && !skippable(err) {
			return err
		}
	}
	return nil
}

func (im *Importer) mutes(ctx context.Context, rep *Report) error {
	docs, err := im.source.Mutes(ctx)
	if err != nil {
		return err
	}

	for _, d := range docs {
		m, err := ToMute(d)
		if err == nil {
			im.stamp(&m.CreatedAt, &m.UpdatedAt)
			err = im.sink.Mute(ctx, m)
		}
		if ok, err := im.tally(err, "mute", d.ID, &rep.Mutes, rep); !ok {
			return err
		}
	}
	return nil
}

func (im *Importer) posts(ctx context.Context, rep *Report) error {
	docs, err := im.source.Posts(ctx)
	if err != nil {
		return err
	}

	for _, d := range docs {
		p, err := ToPost(d)
		if err == nil {
			im.stamp(&p.CreatedAt, &p.UpdatedAt)
			err = im.sink.Post(ctx, p)
		}
		if ok, err := im.tally(err, "post", d.ID, &rep.Posts, rep); !ok {
			return err
		}
	}
	return nil
}

// comments writes roots before replies. Threads are one level deep here, so
// a reply to a reply is attached to the thread's root.
func (im *Importer) comments(ctx context.Context, rep *Report) error {
	docs, err := im.source.Comments(ctx)
	if err != nil {
		return err
	}

	parents := make(map[bson.ObjectID]*bson.ObjectID, len(docs))
	for _, d := range docs {
		parents[d.ID] = d.ParentComment
	}

	roots := make([]CommentDoc, 0, len(docs))
	replies := make([]CommentDoc, 0)
	for _, d := range docs {
		if d.ParentComment == nil || d.ParentComment.IsZero() {
			roots = append(roots, d)
			continue
		}
		root := rootOf(*d.ParentComment, parents)
		d.ParentComment = &root
		replies = append(replies, d)
	}

	for _, d := range append(roots, replies...) {
		c := ToComment(d)
		im.stamp(&c.CreatedAt, &c.UpdatedAt)
		err := im.sink.Comment(ctx, c)
		ok, err := im.tally(err, "comment", d.ID, &rep.Comments, rep)
		if !ok {
			return err
		}
		if err != nil {
			continue
		}

		for _, liker := range d.Likes {
			err := im.sink.Like(ctx, c.ID, MapID(kindUser, liker))
			if ok, err := im.tally(err, "comment like", d.ID, &rep.Likes, rep); !ok {
				return err
			}
		}
	}
	return nil
}

func (im *Importer) packs(ctx context.Context, rep *Report) error {
	docs, err := im.source.Packs(ctx)
	if err != nil {
		return err
	}

	for _, d := range docs {
		p := ToPack(d)
		im.stamp(&p.CreatedAt, &p.UpdatedAt)
		err := im.sink.Pack(ctx, p)
		if ok, err := im.tally(err, "emoji pack", d.ID, &rep.Packs, rep); !ok {
			return err
		}
	}
	return nil
}

func (im *Importer) emojis(ctx context.Context, rep *Report) error {
	docs, err := im.source.Emojis(ctx)
	if err != nil {
		return err
	}

	for _, d := range docs {
		e, err := ToEmoji(d)
		if err == nil {
			im.stamp(&e.CreatedAt, &e.UpdatedAt)
			err = im.sink.Emoji(ctx, e)
		}
		if ok, err := im.tally(err, "emoji", d.ID, &rep.Emojis, rep); !ok {
			return err
		}
	}
	return nil
}

func (im *Importer) reactions(ctx context.Context, rep *Report) error {
	docs, err := im.source.Reactions(ctx)
	if err != nil {
		return err
	}

	for _, d := range docs {
		r := ToReaction(d)
		updated := r.CreatedAt
		im.stamp(&r.CreatedAt, &updated)
		err := im.sink.Reaction(ctx, r)
		if ok, err := im.tally(err, "reaction", d.ID, &rep.Reactions, rep); !ok {
			return err
		}
	}
	return nil
}

func (im *Importer) settings(ctx context.Context, rep *Report) error {
	doc, err := im.source.Settings(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := im.sink.Settings(ctx, ToSettings(*doc)); err != nil {
		return err
	}
	rep.Settings = true
	return nil
}

// tally reports whether the run may continue. A nil error bumps counter, a
// skippable error bumps the skip count and is returned so callers can tell
// the row was not written.
func (im *Importer) tally(
	err error,
	kind string,
	id bson.ObjectID,
	counter *int,
	rep *Report,
) (bool, error) {
	if err == nil {
		*counter++
		return true, nil
	}
	if !skippable(err) {
		return false, err
	}

	rep.Skipped++
	im.logger.Warn("skipped legacy document",
		"kind", kind,
		"legacy_id", id.Hex(),
		"error", err,
	)
	return true, err
}

func (im *Importer) stamp(created, updated *time.Time) {
	if created.IsZero() {
		*created = im.now()
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func skippable(err error) bool {
	return errors.Is(err, core.ErrInvalidInput) ||
		errors.Is(err, core.ErrDuplicateKey) ||
		errors.Is(err, core.ErrNotFound)
}

// rootOf follows parent links up to the top-level comment. Cycles and
// dangling parents stop at the last known id.
func rootOf(id bson.ObjectID, parents map[bson.ObjectID]*bson.ObjectID) bson.ObjectID {
	seen := make(map[bson.ObjectID]bool)
	for !seen[id] {
		seen[id] = true
		parent, ok := parents[id]
		if !ok || parent == nil || parent.IsZero() {
			return id
		}
		id = *parent
	}
	return id
}
