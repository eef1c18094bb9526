package memo

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// copySuffix is appended to the name of a duplicated folder.
const copySuffix = " (copy)"

// Commit describes a completed mutation. Silent commits come from live
// editing and must not trigger list re-rendering.
type Commit struct {
	Op     string
	Silent bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDSource sets the identifier generator.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// WithComparer sets the name comparer used for name ordering.
func WithComparer(cmp Comparer) Option {
	return func(s *Store) { s.cmp = cmp }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// OnCommit registers fn to run after every successful mutation.
func OnCommit(fn func(Commit)) Option {
	return func(s *Store) { s.onCommit = fn }
}

// Store is the single source of truth for memos, folders, settings and the
// sort preference. Memos are kept most-recently-inserted first.
//
// Store is not safe for concurrent use; all calls are expected to come from
// the UI event loop.
type Store struct {
	memos    []Memo
	folders  []Folder
	settings Settings
	sort     SortOrder

	clock    Clock
	ids      IDSource
	cmp      Comparer
	logger   *slog.Logger
	onCommit func(Commit)
}

// NewStore creates a store seeded with data.
func NewStore(data Data, opts ...Option) *Store {
	s := &Store{
		memos:    slices.Clone(data.Memos),
		folders:  slices.Clone(data.Folders),
		settings: data.Settings,
		sort:     data.Sort,
		clock:    SystemClock{},
		ids:      UUIDSource{},
		cmp:      NewComparer("und"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if validateStruct(s.settings) != nil {
		s.settings = DefaultSettings()
	}
	if !s.sort.Valid() {
		s.sort = SortUpdated
	}
	return s
}

// SetCommitHook replaces the commit hook.
func (s *Store) SetCommitHook(fn func(Commit)) {
	s.onCommit = fn
}

func (s *Store) commit(op string, silent bool) {
	s.logger.Debug("memo store commit", "op", op, "silent", silent)
	if s.onCommit != nil {
		s.onCommit(Commit{Op: op, Silent: silent})
	}
}

// Data returns a copy of the full document model.
func (s *Store) Data() Data {
	return Data{
		Memos:    slices.Clone(s.memos),
		Folders:  slices.Clone(s.folders),
		Settings: s.settings,
		Sort:     s.sort,
	}
}

// Memos returns all memos in insertion order (newest first).
func (s *Store) Memos() []Memo { return slices.Clone(s.memos) }

// Folders returns all folders in insertion order.
func (s *Store) Folders() []Folder { return slices.Clone(s.folders) }

// Settings returns the current settings.
func (s *Store) Settings() Settings { return s.settings }

// SortOrder returns the current sort preference.
func (s *Store) SortOrder() SortOrder { return s.sort }

// Comparer returns the name comparer.
func (s *Store) Comparer() Comparer { return s.cmp }

// Memo looks up a memo by id.
func (s *Store) Memo(id string) (Memo, bool) {
	if i := s.memoIndex(id); i >= 0 {
		return s.memos[i], true
	}
	return Memo{}, false
}

// Folder looks up a folder by id.
func (s *Store) Folder(id string) (Folder, bool) {
	if i := s.folderIndex(id); i >= 0 {
		return s.folders[i], true
	}
	return Folder{}, false
}

// HasFolder reports whether a folder with id exists.
func (s *Store) HasFolder(id string) bool {
	return id != "" && s.folderIndex(id) >= 0
}

// EffectiveFolder returns the memo's folder id, or empty when the memo is
// unfiled or its folder no longer exists.
func (s *Store) EffectiveFolder(m Memo) string {
	if s.HasFolder(m.FolderID) {
		return m.FolderID
	}
	return ""
}

// RootMemos returns memos that are not in any existing folder.
func (s *Store) RootMemos() []Memo {
	var out []Memo
	for _, m := range s.memos {
		if s.EffectiveFolder(m) == "" {
			out = append(out, m)
		}
	}
	return out
}

// FolderMemos returns the memos filed in folderID.
func (s *Store) FolderMemos(folderID string) []Memo {
	var out []Memo
	for _, m := range s.memos {
		if folderID != "" && m.FolderID == folderID {
			out = append(out, m)
		}
	}
	return out
}

// FiledMemos returns every memo that belongs to an existing folder.
func (s *Store) FiledMemos() []Memo {
	var out []Memo
	for _, m := range s.memos {
		if s.EffectiveFolder(m) != "" {
			out = append(out, m)
		}
	}
	return out
}

// FolderName returns the name of folderID, or empty when it does not exist.
func (s *Store) FolderName(folderID string) string {
	if f, ok := s.Folder(folderID); ok {
		return f.Name
	}
	return ""
}

func (s *Store) memoIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.memos, func(m Memo) bool { return m.ID == id })
}

func (s *Store) folderIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.folders, func(f Folder) bool { return f.ID == id })
}

// maxIDAttempts bounds how often the configured IDSource is asked for an
// unused id before falling back to UUIDSource.
const maxIDAttempts = 8

// newID returns an identifier not used by any memo or folder.
func (s *Store) newID() string {
	for range maxIDAttempts {
		if id := s.ids.NewID(); s.idFree(id) {
			return id
		}
	}
	s.logger.Warn("id source keeps returning used ids, falling back to uuid")
	for {
		if id := (UUIDSource{}).NewID(); s.idFree(id) {
			return id
		}
	}
}

func (s *Store) idFree(id string) bool {
	return id != "" && s.memoIndex(id) < 0 && s.folderIndex(id) < 0
}

// CreateMemo inserts an empty memo at the front of the collection. A
// folderID that does not name an existing folder files the memo nowhere.
func (s *Store) CreateMemo(folderID string) Memo {
	now := s.clock.Now()
	m := Memo{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.HasFolder(folderID) {
		m.FolderID = folderID
	}
	s.memos = slices.Insert(s.memos, 0, m)
	s.commit("create-memo", false)
	return m
}

// UpdateMemoText sets a memo's text and refreshes UpdatedAt.
func (s *Store) UpdateMemoText(id, text string) error {
	return s.updateText(id, text, false)
}

// UpdateMemoTextSilent is UpdateMemoText for live typing: the commit is
// flagged silent so list views are not re-rendered.
func (s *Store) UpdateMemoTextSilent(id, text string) error {
	return s.updateText(id, text, true)
}

func (s *Store) updateText(id, text string, silent bool) error {
	i := s.memoIndex(id)
	if i < 0 {
		return fmt.Errorf("update memo %q: %w", id, ErrNotFound)
	}
	s.memos[i].Text = text
	s.memos[i].UpdatedAt = s.clock.Now()
	s.commit("update-memo", silent)
	return nil
}

// DeleteMemo removes a memo.
func (s *Store) DeleteMemo(id string) error {
	if s.memoIndex(id) < 0 {
		return fmt.Errorf("delete memo %q: %w", id, ErrNotFound)
	}
	s.DeleteMemos([]string{id})
	return nil
}

// DeleteMemos removes every memo whose id is in ids and returns how many
// were removed.
func (s *Store) DeleteMemos(ids []string) int {
	set := toSet(ids)
	before := len(s.memos)
	s.memos = slices.DeleteFunc(s.memos, func(m Memo) bool { return set[m.ID] })
	removed := before - len(s.memos)
	if removed > 0 {
		s.commit("delete-memos", false)
	}
	return removed
}

// DiscardIfBlank deletes the memo when its text is empty or whitespace.
// Reports whether the memo was discarded.
func (s *Store) DiscardIfBlank(id string) bool {
	i := s.memoIndex(id)
	if i < 0 || !s.memos[i].IsBlank() {
		return false
	}
	s.memos = slices.Delete(s.memos, i, i+1)
	s.commit("discard-blank", false)
	return true
}

// duplicate copies m with a fresh id and timestamps.
func (s *Store) duplicate(m Memo) Memo {
	now := s.clock.Now()
	m.ID = s.newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	return m
}

// CopyMemo duplicates a memo and inserts the copy at the front.
func (s *Store) CopyMemo(id string) (Memo, error) {
	src, ok := s.Memo(id)
	if !ok {
		return Memo{}, fmt.Errorf("copy memo %q: %w", id, ErrNotFound)
	}
	cp := s.duplicate(src)
	s.memos = slices.Insert(s.memos, 0, cp)
	s.commit("copy-memo", false)
	return cp, nil
}

// CopyMemos duplicates every memo in ids. The copies are inserted together
// at the front, in the same relative order as their sources.
func (s *Store) CopyMemos(ids []string) []Memo {
	set := toSet(ids)
	var copies []Memo
	for _, m := range s.memos {
		if set[m.ID] {
			copies = append(copies, s.duplicate(m))
		}
	}
	if len(copies) == 0 {
		return nil
	}
	s.memos = append(slices.Clone(copies), s.memos...)
	s.commit("copy-memos", false)
	return copies
}

// CreateFolder appends a new folder.
func (s *Store) CreateFolder(name, color string) (Folder, error) {
	f := Folder{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		Color:     NormalizeColor(color),
		CreatedAt: s.clock.Now(),
	}
	if err := validateStruct(f); err != nil {
		return Folder{}, fmt.Errorf("create folder: %w", err)
	}
	s.folders = append(s.folders, f)
	s.commit("create-folder", false)
	return f, nil
}

// RenameFolder changes a folder's name.
func (s *Store) RenameFolder(id, name string) error {
	i := s.folderIndex(id)
	if i < 0 {
		return fmt.Errorf("rename folder %q: %w", id, ErrNotFound)
	}
	f := s.folders[i]
	f.Name = strings.TrimSpace(name)
	if err := validateStruct(f); err != nil {
		return fmt.Errorf("rename folder: %w", err)
	}
	s.folders[i] = f
	s.commit("rename-folder", false)
	return nil
}

// RecolorFolder changes a folder's colour.
func (s *Store) RecolorFolder(id, color string) error {
	i := s.folderIndex(id)
	if i < 0 {
		return fmt.Errorf("recolor folder %q: %w", id, ErrNotFound)
	}
	f := s.folders[i]
	f.Color = NormalizeColor(color)
	if err := validateStruct(f); err != nil {
		return fmt.Errorf("recolor folder: %w", err)
	}
	s.folders[i] = f
	s.commit("recolor-folder", false)
	return nil
}

// DeleteFolder removes a folder and unfiles its memos.
func (s *Store) DeleteFolder(id string) error {
	if s.folderIndex(id) < 0 {
		return fmt.Errorf("delete folder %q: %w", id, ErrNotFound)
	}
	s.DeleteFolders([]string{id})
	return nil
}

// DeleteFolders removes every folder in ids and unfiles their memos in the
// same step, so no memo is ever persisted pointing at a deleted folder.
func (s *Store) DeleteFolders(ids []string) int {
	set := toSet(ids)
	before := len(s.folders)
	s.folders = slices.DeleteFunc(s.folders, func(f Folder) bool { return set[f.ID] })
	removed := before - len(s.folders)
	if removed == 0 {
		return 0
	}
	for i := range s.memos {
		if set[s.memos[i].FolderID] {
			s.memos[i].FolderID = ""
		}
	}
	s.commit("delete-folders", false)
	return removed
}

// CopyFolder duplicates a folder together with all of its memos. The new
// folder's name gets a copy suffix; memo copies get fresh ids and times.
func (s *Store) CopyFolder(id string) (Folder, error) {
	src, ok := s.Folder(id)
	if !ok {
		return Folder{}, fmt.Errorf("copy folder %q: %w", id, ErrNotFound)
	}
	f := src
	f.ID = s.newID()
	f.Name = src.Name + copySuffix
	f.CreatedAt = s.clock.Now()
	s.folders = append(s.folders, f)

	for _, m := range s.FolderMemos(id) {
		cp := s.duplicate(m)
		cp.FolderID = f.ID
		s.memos = append(s.memos, cp)
	}
	s.commit("copy-folder", false)
	return f, nil
}

// MoveMemos files every memo in ids into target ("" to unfile) and
// refreshes their UpdatedAt. Returns the number of memos moved.
func (s *Store) MoveMemos(ids []string, target string) (int, error) {
	if target != "" && !s.HasFolder(target) {
		return 0, fmt.Errorf("move memos to %q: %w", target, ErrNotFound)
	}
	set := toSet(ids)
	now := s.clock.Now()
	moved := 0
	for i := range s.memos {
		if set[s.memos[i].ID] {
			s.memos[i].FolderID = target
			s.memos[i].UpdatedAt = now
			moved++
		}
	}
	if moved > 0 {
		s.commit("move-memos", false)
	}
	return moved, nil
}

// MoveFolderContents refiles every memo belonging to one of folderIDs into
// target ("" to unfile). The source folders themselves are kept.
func (s *Store) MoveFolderContents(folderIDs []string, target string) (int, error) {
	if target != "" && !s.HasFolder(target) {
		return 0, fmt.Errorf("move folder contents to %q: %w", target, ErrNotFound)
	}
	set := toSet(folderIDs)
	moved := 0
	for i := range s.memos {
		if set[s.memos[i].FolderID] {
			s.memos[i].FolderID = target
			moved++
		}
	}
	if moved > 0 {
		s.commit("move-folder-contents", false)
	}
	return moved, nil
}

// SetSortOrder changes the sort preference.
func (s *Store) SetSortOrder(o SortOrder) error {
	if !o.Valid() {
		return fmt.Errorf("sort order %q: %w", o, ErrValidation)
	}
	s.sort = o
	s.commit("sort", false)
	return nil
}

// CycleSortOrder advances the sort preference to the next order.
func (s *Store) CycleSortOrder() SortOrder {
	s.sort = s.sort.Next()
	s.commit("sort", false)
	return s.sort
}

// SetFontSize changes the font size preference.
func (s *Store) SetFontSize(size FontSize) error {
	next := Settings{FontSize: size}
	if err := validateStruct(next); err != nil {
		return fmt.Errorf("font size: %w", err)
	}
	s.settings = next
	s.commit("settings", false)
	return nil
}

// SortMemos orders list by the current sort preference.
func (s *Store) SortMemos(list []Memo) []Memo {
	return SortMemos(list, s.sort, s.cmp)
}

// SortFolders orders list by the current sort preference.
func (s *Store) SortFolders(list []Folder) []Folder {
	return SortFolders(list, s.sort, s.cmp)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
