package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	log "github.com/sirupsen/logrus"

	"bord/internal/model"
)

// DocumentStore keeps every board and task in a single document. With a
// path it is written back to disk as JSON after each change; without one it
// lives only as long as the process.
type DocumentStore struct {
	path string
	doc  *document
}

type document struct {
	Boards      []model.Board `json:"boards"`
	Tasks       []model.Task  `json:"tasks"`
	NextBoardID uint          `json:"next_board_id"`
	NextTaskID  uint          `json:"next_task_id"`
}

func newDocument() *document {
	return &document{
		Boards:      []model.Board{},
		Tasks:       []model.Task{},
		NextBoardID: 1,
		NextTaskID:  1,
	}
}

// NewMemoryStore returns an ephemeral store.
func NewMemoryStore() *DocumentStore {
	return &DocumentStore{doc: newDocument()}
}

// NewFileStore opens the JSON file at path, creating its directory if needed.
// A missing file is treated as an empty store and is created on first write.
func NewFileStore(path string) (*DocumentStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	store := &DocumentStore{path: path, doc: newDocument()}
	if _, err := os.Stat(path); err == nil {
		if err := store.load(); err != nil {
			return nil, fmt.Errorf("failed to load store: %w", err)
		}
	}
	log.WithField("path", path).Debug("file store opened")

	return store, nil
}

func (s *DocumentStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return err
	}

	// Counters may be missing from hand-edited files.
	for _, b := range doc.Boards {
		if b.ID >= doc.NextBoardID {
			doc.NextBoardID = b.ID + 1
		}
	}
	for _, t := range doc.Tasks {
		if t.ID >= doc.NextTaskID {
			doc.NextTaskID = t.ID + 1
		}
	}
	s.doc = doc
	return nil
}

func (s *DocumentStore) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

func (s *DocumentStore) boardIndex(id uint) int {
	return slices.IndexFunc(s.doc.Boards, func(b model.Board) bool { return b.ID == id })
}

func (s *DocumentStore) taskIndex(id uint) int {
	return slices.IndexFunc(s.doc.Tasks, func(t model.Task) bool { return t.ID == id })
}

// withTasks returns a detached copy of b carrying its tasks.
func (s *DocumentStore) withTasks(b model.Board) *model.Board {
	board := model.Board{ID: b.ID, Name: b.Name, Tasks: []model.Task{}}
	for _, t := range s.doc.Tasks {
		if t.BoardID == b.ID {
			board.Tasks = append(board.Tasks, t)
		}
	}
	sortTasks(board.Tasks)
	return &board
}

func (s *DocumentStore) CreateBoard(_ context.Context, board *model.Board) error {
	board.ID = s.doc.NextBoardID
	s.doc.NextBoardID++
	s.doc.Boards = append(s.doc.Boards, model.Board{ID: board.ID, Name: board.Name})
	return s.save()
}

func (s *DocumentStore) GetBoard(_ context.Context, id uint) (*model.Board, error) {
	i := s.boardIndex(id)
	if i < 0 {
		return nil, nil
	}
	return s.withTasks(s.doc.Boards[i]), nil
}

func (s *DocumentStore) FindBoardByName(_ context.Context, name string) (*model.Board, error) {
	for _, b := range s.doc.Boards {
		if b.HasName(name) {
			return s.withTasks(b), nil
		}
	}
	return nil, nil
}

func (s *DocumentStore) ListBoards(_ context.Context) ([]model.Board, error) {
	boards := make([]model.Board, 0, len(s.doc.Boards))
	for _, b := range s.doc.Boards {
		boards = append(boards, *s.withTasks(b))
	}
	slices.SortFunc(boards, func(a, b model.Board) int { return cmp.Compare(a.ID, b.ID) })
	return boards, nil
}

func (s *DocumentStore) DeleteBoard(_ context.Context, id uint) error {
	i := s.boardIndex(id)
	if i < 0 {
		return ErrBoardNotFound
	}
	s.doc.Boards = slices.Delete(s.doc.Boards, i, i+1)
	return s.save()
}

func (s *DocumentStore) CreateTask(_ context.Context, task *model.Task) error {
	if s.boardIndex(task.BoardID) < 0 {
		return ErrBoardNotFound
	}
	task.ID = s.doc.NextTaskID
	s.doc.NextTaskID++
	stored := *task
	stored.Board = nil
	s.doc.Tasks = append(s.doc.Tasks, stored)
	return s.save()
}

func (s *DocumentStore) GetTask(_ context.Context, id uint) (*model.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrTaskNotFound
	}
	task := s.doc.Tasks[i]
	return &task, nil
}

func (s *DocumentStore) UpdateTask(_ context.Context, task *model.Task) error {
	i := s.taskIndex(task.ID)
	if i < 0 {
		return ErrTaskNotFound
	}
	if s.boardIndex(task.BoardID) < 0 {
		return ErrBoardNotFound
	}
	stored := *task
	stored.Board = nil
	s.doc.Tasks[i] = stored
	return s.save()
}

func (s *DocumentStore) DeleteTask(_ context.Context, id uint) error {
	i := s.taskIndex(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.doc.Tasks = slices.Delete(s.doc.Tasks, i, i+1)
	return s.save()
}

func (s *DocumentStore) MaxTaskID(_ context.Context) (uint, error) {
	var max uint
	for _, t := range s.doc.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max, nil
}

func (s *DocumentStore) Close() error {
	return nil
}
