package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/marcus/memopad/internal/export"
	"github.com/marcus/memopad/internal/highlight"
	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/state"
	"github.com/marcus/memopad/internal/store"
	"github.com/marcus/memopad/internal/view"
)

var (
	// ErrNothingSelected is returned by bulk actions on an empty selection.
	ErrNothingSelected = errors.New("nothing selected")
	// ErrTargetNotFound is returned when a replace target does not occur.
	ErrTargetNotFound = errors.New("replacement target not found")
	// ErrNotEditing is returned by editor actions outside the editor.
	ErrNotEditing = errors.New("no memo open")
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Approved confirms everything. Used once a dialog has been accepted.
var Approved = ConfirmFunc(func(string) bool { return true })

// Options configures a Controller.
type Options struct {
	Logger   *slog.Logger
	Sharer   export.Sharer
	Clock    memo.Clock
	IDs      memo.IDSource
	Locale   string
	Location *time.Location
}

// Controller owns the document store, the navigation state and the
// repository. Every mutation is persisted through the store's commit hook
// and the machine's change hook.
type Controller struct {
	ctx    context.Context
	store  *memo.Store
	nav    *state.Machine
	repo   *store.Repository
	sharer export.Sharer
	logger *slog.Logger
	loc    *time.Location

	saveErr error
}

// NewController builds the app state from a loaded snapshot and restores
// the saved navigation state.
func NewController(ctx context.Context, repo *store.Repository, snap store.Snapshot, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	storeOpts := []memo.Option{
		memo.WithLogger(logger),
		memo.WithComparer(memo.NewComparer(opts.Locale)),
	}
	if opts.Clock != nil {
		storeOpts = append(storeOpts, memo.WithClock(opts.Clock))
	}
	if opts.IDs != nil {
		storeOpts = append(storeOpts, memo.WithIDSource(opts.IDs))
	}

	c := &Controller{
		ctx:    ctx,
		store:  memo.NewStore(snap.Data, storeOpts...),
		repo:   repo,
		sharer: opts.Sharer,
		logger: logger,
		loc:    loc,
	}
	c.nav = state.New(c.store)
	c.store.SetCommitHook(c.persist)
	c.nav.OnChange(c.persistNav)

	if snap.HasNav {
		c.nav.Restore(snap.Nav)
	}
	return c
}

func (c *Controller) persist(commit memo.Commit) {
	if c.repo == nil {
		return
	}
	var err error
	if commit.Silent {
		err = c.repo.SaveMemos(c.ctx, c.store.Memos())
	} else {
		err = c.repo.SaveData(c.ctx, c.store.Data())
	}
	if err != nil {
		c.logger.Error("save failed", "op", commit.Op, "err", err)
		c.saveErr = err
	}
}

func (c *Controller) persistNav(s state.Snapshot) {
	if c.repo == nil {
		return
	}
	if err := c.repo.SaveNav(c.ctx, s); err != nil {
		c.logger.Error("save navigation state failed", "err", err)
		c.saveErr = err
	}
}

// TakeSaveError returns and clears the last persistence error.
func (c *Controller) TakeSaveError() error {
	err := c.saveErr
	c.saveErr = nil
	return err
}

func (c *Controller) Store() *memo.Store { return c.store }

func (c *Controller) Nav() *state.Machine { return c.nav }

// SetSharer replaces the export destination.
func (c *Controller) SetSharer(s export.Sharer) { c.sharer = s }

// View recomputes the current list view.
func (c *Controller) View() view.View {
	return view.Compute(c.store, c.nav)
}

// SwitchTab changes tab.
func (c *Controller) SwitchTab(tab state.Tab) {
	c.nav.SwitchTab(tab)
}

// OpenFolder shows the folder detail for id.
func (c *Controller) OpenFolder(id string) bool {
	return c.nav.OpenFolderDetail(id)
}

// SetQuery sets the inline filter of the current list.
func (c *Controller) SetQuery(q string) {
	c.nav.SetQuery(q)
}

// NewMemo opens the editor on a new blank memo, filed in the open folder
// when a folder detail is showing.
func (c *Controller) NewMemo() memo.Memo {
	folderID := ""
	if c.nav.InFolderDetail() {
		folderID = c.nav.FolderID()
	}
	m, _ := c.nav.OpenEditor("", folderID)
	return m
}

// OpenMemo opens the editor on an existing memo.
func (c *Controller) OpenMemo(id string) (memo.Memo, bool) {
	return c.nav.OpenEditor(id, "")
}

// EditingMemo returns the memo in the editor.
func (c *Controller) EditingMemo() (memo.Memo, bool) {
	if !c.nav.Editing() {
		return memo.Memo{}, false
	}
	return c.store.Memo(c.nav.EditingID())
}

// Type saves editor text without recomputing any list.
func (c *Controller) Type(text string) error {
	if !c.nav.Editing() {
		return ErrNotEditing
	}
	if m, ok := c.store.Memo(c.nav.EditingID()); ok && m.Text == text {
		return nil
	}
	return c.store.UpdateMemoTextSilent(c.nav.EditingID(), text)
}

// Back leaves the editor or folder detail. Leaving the editor saves text
// in full, or discards the memo when text is blank. It reports whether a
// memo was discarded.
func (c *Controller) Back(text string) bool {
	if c.nav.Editing() {
		id := c.nav.EditingID()
		if m, ok := c.store.Memo(id); ok && m.Text != text {
			if strings.TrimSpace(text) == "" {
				_ = c.store.UpdateMemoTextSilent(id, text)
			} else if err := c.store.UpdateMemoText(id, text); err != nil {
				c.logger.Warn("save on close failed", "id", id, "err", err)
			}
		}
	}
	return c.nav.GoBack()
}

// Highlight returns the active editor highlight term.
func (c *Controller) Highlight() string {
	return c.nav.Highlight()
}

// Find sets the editor highlight to term and returns how often it occurs
// in text. An empty term leaves the highlight unchanged.
func (c *Controller) Find(text, term string) int {
	if term == "" {
		return 0
	}
	c.nav.SetHighlight(term)
	return highlight.Count(text, term)
}

// Replace substitutes every occurrence of target in text and saves the
// result. The replacement becomes the highlight, or the highlight is
// cleared when it is empty.
func (c *Controller) Replace(text, target, replacement string) (highlight.Result, error) {
	if !c.nav.Editing() {
		return highlight.Result{Text: text}, ErrNotEditing
	}
	res := highlight.ReplaceAll(text, target, replacement)
	if !res.Changed {
		return res, ErrTargetNotFound
	}
	if err := c.store.UpdateMemoTextSilent(c.nav.EditingID(), res.Text); err != nil {
		return res, err
	}
	c.nav.SetHighlight(replacement)
	return res, nil
}

// SelectsFolders reports whether bulk selection on the current screen is
// of folders rather than memos.
func (c *Controller) SelectsFolders() bool {
	return c.nav.View() == state.ViewFolderList
}

// DeleteMessage is the confirmation prompt for deleting sel.
func (c *Controller) DeleteMessage(sel Selection) string {
	if n := sel.FolderCount(); n > 0 {
		return fmt.Sprintf("Delete %s? Their memos become unfiled.", plural(n, "folder"))
	}
	return fmt.Sprintf("Delete %s?", plural(sel.MemoCount(), "memo"))
}

// Delete removes the selected items after confirmation. Declining
// deletes nothing.
func (c *Controller) Delete(sel Selection, confirm Confirmer) (int, error) {
	if sel.Empty() {
		return 0, ErrNothingSelected
	}
	if !confirm.Confirm(c.DeleteMessage(sel)) {
		return 0, nil
	}
	n := c.store.DeleteFolders(sel.FolderIDs())
	n += c.store.DeleteMemos(sel.MemoIDs())
	return n, nil
}

// Move files the selected memos, or the contents of the selected folders,
// into target. An empty target unfiles them.
func (c *Controller) Move(sel Selection, target string) (int, error) {
	if sel.Empty() {
		return 0, ErrNothingSelected
	}
	total := 0
	if ids := sel.FolderIDs(); len(ids) > 0 {
		n, err := c.store.MoveFolderContents(ids, target)
		if err != nil {
			return 0, err
		}
		total += n
	}
	if ids := sel.MemoIDs(); len(ids) > 0 {
		n, err := c.store.MoveMemos(ids, target)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Copy duplicates the selected memos and folders.
func (c *Controller) Copy(sel Selection) (int, error) {
	if sel.Empty() {
		return 0, ErrNothingSelected
	}
	n := len(c.store.CopyMemos(sel.MemoIDs()))
	for _, id := range sel.FolderIDs() {
		if _, err := c.store.CopyFolder(id); err == nil {
			n++
		}
	}
	return n, nil
}

// ExportTargets resolves sel to memos: the members of selected folders
// followed by directly selected memos, without duplicates.
func (c *Controller) ExportTargets(sel Selection) []memo.Memo {
	var out []memo.Memo
	seen := make(map[string]bool)
	add := func(m memo.Memo) {
		if !seen[m.ID] {
			seen[m.ID] = true
			out = append(out, m)
		}
	}
	folders := sel.FolderIDs()
	for _, m := range c.store.Memos() {
		if m.FolderID != "" && slices.Contains(folders, m.FolderID) {
			add(m)
		}
	}
	for _, m := range c.store.Memos() {
		if sel.HasMemo(m.ID) {
			add(m)
		}
	}
	return out
}

// Export hands the selected memos to the sharer as text files.
func (c *Controller) Export(ctx context.Context, sel Selection) (int, error) {
	return c.exportMemos(ctx, c.ExportTargets(sel))
}

func (c *Controller) exportMemos(ctx context.Context, targets []memo.Memo) (int, error) {
	if len(targets) == 0 {
		return 0, export.ErrNothingToExport
	}
	if c.sharer == nil {
		return 0, errors.New("no export destination configured")
	}
	files := export.Files(targets, c.loc)
	if err := c.sharer.Share(ctx, files); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	c.logger.Info("exported memos", "count", len(files))
	return len(files), nil
}

// CreateFolder adds a folder.
func (c *Controller) CreateFolder(name, color string) (memo.Folder, error) {
	return c.store.CreateFolder(name, color)
}

func (c *Controller) RenameFolder(id, name string) error {
	return c.store.RenameFolder(id, name)
}

func (c *Controller) RecolorFolder(id, color string) error {
	return c.store.RecolorFolder(id, color)
}

// CopyFolder duplicates a folder and its memos.
func (c *Controller) CopyFolder(id string) (memo.Folder, error) {
	return c.store.CopyFolder(id)
}

// CycleSort advances the sort order.
func (c *Controller) CycleSort() memo.SortOrder {
	return c.store.CycleSortOrder()
}

func (c *Controller) SetFontSize(size memo.FontSize) error {
	return c.store.SetFontSize(size)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
