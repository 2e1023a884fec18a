package board

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/studiowebux/postboard/internal/types"
)

var (
	// ErrNoSelection is returned by SaveEdit when no post is open for editing
	ErrNoSelection = errors.New("no post selected")

	// ErrStaleResponse is returned by ResolveDetail for a superseded read
	ErrStaleResponse = errors.New("detail response superseded")
)

// Source is the remote side of the collection
type Source interface {
	List(ctx context.Context) ([]types.Post, error)
	Get(ctx context.Context, id int) (types.Post, error)
}

// ModalState is the state of the detail/edit modal
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalView
	ModalEdit
)

func (s ModalState) String() string {
	switch s {
	case ModalView:
		return "view"
	case ModalEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Token tags one in-flight detail read
type Token uint64

// Controller reconciles the collection, the filtered view and the modal
type Controller struct {
	collection []types.Post
	filter     Filter
	draft      types.Draft

	detail *types.Post
	modal  ModalState

	generation Token
	pending    bool
	pendingID  int

	loaded  bool
	loadErr error
}

// New returns an empty controller
func New() *Controller {
	return &Controller{}
}

// Initialize reads the whole collection once. On failure the collection
// stays empty and the error is logged and kept for LoadError.
func (c *Controller) Initialize(ctx context.Context, src Source) error {
	posts, err := src.List(ctx)
	return c.CompleteLoad(posts, err)
}

// CompleteLoad applies the outcome of a collection read started elsewhere
func (c *Controller) CompleteLoad(posts []types.Post, err error) error {
	if err != nil {
		c.collection = nil
		c.filter = Filter{}
		c.loaded = false
		c.loadErr = err
		log.Error().Err(err).Msg("Failed to load posts")
		return err
	}

	c.Load(posts)
	log.Info().Int("count", len(c.collection)).Msg("Posts loaded")
	return nil
}

// Load seeds the collection from posts and clears the filter. Later
// duplicates of an id are dropped so ids stay unique.
func (c *Controller) Load(posts []types.Post) {
	seen := make(map[int]bool, len(posts))
	collection := make([]types.Post, 0, len(posts))
	for _, p := range posts {
		if seen[p.ID] {
			log.Warn().Int("id", p.ID).Msg("Dropping duplicate post id")
			continue
		}
		seen[p.ID] = true
		collection = append(collection, p)
	}

	c.collection = collection
	c.filter = Filter{}
	c.loaded = true
	c.loadErr = nil
}

// Search replaces the active filter. Each call starts from the full collection.
func (c *Controller) Search(query string) {
	c.filter = ParseFilter(query)
}

// AddPost appends draft under the next free id and resets the draft.
// The filter is cleared so the new post is visible.
func (c *Controller) AddPost(draft types.Draft) types.Post {
	post := types.Post{
		ID:    c.nextID(),
		Title: draft.Title,
		Body:  draft.Body,
	}

	c.collection = append(c.collection, post)
	c.filter = Filter{}
	c.draft = types.Draft{}
	return post
}

func (c *Controller) nextID() int {
	maxID := 0
	for _, p := range c.collection {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// BeginDetail starts a detail read for id and returns its token
func (c *Controller) BeginDetail(id int) Token {
	c.generation++
	c.pending = true
	c.pendingID = id
	return c.generation
}

// CancelDetail drops the in-flight detail read, if any, without touching the
// modal or the draft. It reports whether a read was pending.
func (c *Controller) CancelDetail() bool {
	if !c.pending {
		return false
	}
	log.Debug().Int("id", c.pendingID).Msg("Cancelled detail read")
	c.invalidatePending()
	return true
}

// ResolveDetail applies the outcome of the read tagged tok. Superseded
// reads return ErrStaleResponse and change nothing. A failed read is
// logged, returned, and leaves the modal as it was.
func (c *Controller) ResolveDetail(tok Token, post types.Post, err error) error {
	if tok != c.generation || !c.pending {
		log.Debug().Uint64("token", uint64(tok)).Msg("Ignoring superseded detail response")
		return ErrStaleResponse
	}
	id := c.pendingID
	c.pending = false

	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("Failed to load post detail")
		return err
	}

	if c.modal == ModalEdit {
		c.draft = types.Draft{}
	}
	snapshot := post
	c.detail = &snapshot
	c.modal = ModalView
	return nil
}

// ViewDetail reads id from src and opens it in view mode
func (c *Controller) ViewDetail(ctx context.Context, src Source, id int) error {
	tok := c.BeginDetail(id)
	post, err := src.Get(ctx, id)
	return c.ResolveDetail(tok, post, err)
}

// OpenEdit opens the local copy of post for editing
func (c *Controller) OpenEdit(post types.Post) {
	c.invalidatePending()

	snapshot := post
	c.detail = &snapshot
	c.draft = types.Draft{Title: post.Title, Body: post.Body}
	c.modal = ModalEdit
}

// SetDraft replaces the draft buffer
func (c *Controller) SetDraft(d types.Draft) {
	c.draft = d
}

// SetDraftTitle replaces the draft title
func (c *Controller) SetDraftTitle(title string) {
	c.draft.Title = title
}

// SetDraftBody replaces the draft body
func (c *Controller) SetDraftBody(body string) {
	c.draft.Body = body
}

// SaveEdit writes the draft into the collection entry with the selected id
// and closes the modal. updated is false when that entry no longer exists.
// The filter is cleared so the full collection is shown again.
func (c *Controller) SaveEdit() (updated bool, err error) {
	if c.detail == nil {
		return false, ErrNoSelection
	}

	id := c.detail.ID
	for i := range c.collection {
		if c.collection[i].ID == id {
			c.collection[i].Title = c.draft.Title
			c.collection[i].Body = c.draft.Body
			updated = true
			break
		}
	}
	if !updated {
		log.Debug().Int("id", id).Msg("Edited post no longer in collection")
	}

	c.filter = Filter{}
	c.CloseModal()
	return updated, nil
}

// DeletePost removes the post with id. It reports whether one was removed.
func (c *Controller) DeletePost(id int) bool {
	for i, p := range c.collection {
		if p.ID == id {
			c.collection = append(c.collection[:i:i], c.collection[i+1:]...)
			return true
		}
	}
	return false
}

// CloseModal discards the selection and the draft, pending edits included
func (c *Controller) CloseModal() {
	c.invalidatePending()
	c.detail = nil
	c.draft = types.Draft{}
	c.modal = ModalClosed
}

func (c *Controller) invalidatePending() {
	c.generation++
	c.pending = false
}

// Collection returns a copy of every post in the session
func (c *Controller) Collection() []types.Post {
	out := make([]types.Post, len(c.collection))
	copy(out, c.collection)
	return out
}

// Filtered returns the posts that pass the active filter, in collection order
func (c *Controller) Filtered() []types.Post {
	out := make([]types.Post, 0, len(c.collection))
	for _, p := range c.collection {
		if c.filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the post with id from the collection
func (c *Controller) Find(id int) (types.Post, bool) {
	for _, p := range c.collection {
		if p.ID == id {
			return p, true
		}
	}
	return types.Post{}, false
}

// Filter returns the active filter
func (c *Controller) Filter() Filter { return c.filter }

// Query returns the raw text of the active filter
func (c *Controller) Query() string { return c.filter.Query() }

// Draft returns the draft buffer
func (c *Controller) Draft() types.Draft { return c.draft }

// Detail returns the post shown in the modal, if any
func (c *Controller) Detail() (types.Post, bool) {
	if c.detail == nil {
		return types.Post{}, false
	}
	return *c.detail, true
}

// Modal returns the modal state
func (c *Controller) Modal() ModalState { return c.modal }

// IsModalOpen reports whether the modal is shown
func (c *Controller) IsModalOpen() bool { return c.modal != ModalClosed }

// EditMode reports whether the modal is in edit mode
func (c *Controller) EditMode() bool { return c.modal == ModalEdit }

// DetailPending reports whether a detail read is in flight
func (c *Controller) DetailPending() bool { return c.pending }

// Loaded reports whether the initial read succeeded
func (c *Controller) Loaded() bool { return c.loaded }

// LoadError returns the error of the initial read, if it failed
func (c *Controller) LoadError() error { return c.loadErr }
