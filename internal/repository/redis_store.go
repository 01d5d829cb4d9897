package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"bord/internal/config"
	"bord/internal/model"
)

// RedisStore keeps boards and tasks as JSON values in two hashes keyed by
// id, with INCR counters handing out new ids.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "bord"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis connects to cfg.RedisURL and checks the connection.
func OpenRedis(ctx context.Context, cfg *config.Config) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.WithField("addr", opts.Addr).Debug("✅ Connected to redis")

	return NewRedisStore(client, cfg.RedisPrefix), nil
}

func (s *RedisStore) boardsKey() string   { return s.prefix + ":boards" }
func (s *RedisStore) tasksKey() string    { return s.prefix + ":tasks" }
func (s *RedisStore) boardSeqKey() string { return s.prefix + ":boards:seq" }
func (s *RedisStore) taskSeqKey() string  { return s.prefix + ":tasks:seq" }

func field(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *RedisStore) allTasks(ctx context.Context) ([]model.Task, error) {
	values, err := s.client.HVals(ctx, s.tasksKey()).Result()
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(values))
	for _, v := range values {
		var t model.Task
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	sortTasks(tasks)
	return tasks, nil
}

func (s *RedisStore) allBoards(ctx context.Context) ([]model.Board, error) {
	values, err := s.client.HVals(ctx, s.boardsKey()).Result()
	if err != nil {
		return nil, err
	}
	boards := make([]model.Board, 0, len(values))
	for _, v := range values {
		var b model.Board
		if err := json.Unmarshal([]byte(v), &b); err != nil {
			return nil, fmt.Errorf("decode board: %w", err)
		}
		boards = append(boards, b)
	}
	slices.SortFunc(boards, func(a, b model.Board) int { return cmp.Compare(a.ID, b.ID) })
	return boards, nil
}

func (s *RedisStore) attachTasks(ctx context.Context, board *model.Board) error {
	tasks, err := s.allTasks(ctx)
	if err != nil {
		return err
	}
	board.Tasks = []model.Task{}
	for _, t := range tasks {
		if t.BoardID == board.ID {
			board.Tasks = append(board.Tasks, t)
		}
	}
	return nil
}

func (s *RedisStore) boardExists(ctx context.Context, id uint) (bool, error) {
	return s.client.HExists(ctx, s.boardsKey(), field(id)).Result()
}

func (s *RedisStore) putTask(ctx context.Context, task *model.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.tasksKey(), field(task.ID), data).Err()
}

func (s *RedisStore) CreateBoard(ctx context.Context, board *model.Board) error {
	id, err := s.client.Incr(ctx, s.boardSeqKey()).Result()
	if err != nil {
		return err
	}
	board.ID = uint(id)

	data, err := json.Marshal(model.Board{ID: board.ID, Name: board.Name})
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.boardsKey(), field(board.ID), data).Err()
}

func (s *RedisStore) GetBoard(ctx context.Context, id uint) (*model.Board, error) {
	data, err := s.client.HGet(ctx, s.boardsKey(), field(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var board model.Board
	if err := json.Unmarshal([]byte(data), &board); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if err := s.attachTasks(ctx, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *RedisStore) FindBoardByName(ctx context.Context, name string) (*model.Board, error) {
	boards, err := s.allBoards(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range boards {
		if b.HasName(name) {
			board := b
			if err := s.attachTasks(ctx, &board); err != nil {
				return nil, err
			}
			return &board, nil
		}
	}
	return nil, nil
}

func (s *RedisStore) ListBoards(ctx context.Context) ([]model.Board, error) {
	boards, err := s.allBoards(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.allTasks(ctx)
	if err != nil {
		return nil, err
	}

	byBoard := make(map[uint][]model.Task, len(boards))
	for _, t := range tasks {
		byBoard[t.BoardID] = append(byBoard[t.BoardID], t)
	}
	for i := range boards {
		boards[i].Tasks = byBoard[boards[i].ID]
		if boards[i].Tasks == nil {
			boards[i].Tasks = []model.Task{}
		}
	}
	return boards, nil
}

func (s *RedisStore) DeleteBoard(ctx context.Context, id uint) error {
	n, err := s.client.HDel(ctx, s.boardsKey(), field(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (s *RedisStore) CreateTask(ctx context.Context, task *model.Task) error {
	ok, err := s.boardExists(ctx, task.BoardID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBoardNotFound
	}

	id, err := s.client.Incr(ctx, s.taskSeqKey()).Result()
	if err != nil {
		return err
	}
	task.ID = uint(id)
	return s.putTask(ctx, task)
}

func (s *RedisStore) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	data, err := s.client.HGet(ctx, s.tasksKey(), field(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	var task model.Task
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &task, nil
}

func (s *RedisStore) UpdateTask(ctx context.Context, task *model.Task) error {
	exists, err := s.client.HExists(ctx, s.tasksKey(), field(task.ID)).Result()
	if err != nil {
		return err
	}
	if !exists {
		return ErrTaskNotFound
	}
	ok, err := s.boardExists(ctx, task.BoardID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBoardNotFound
	}
	return s.putTask(ctx, task)
}

func (s *RedisStore) DeleteTask(ctx context.Context, id uint) error {
	n, err := s.client.HDel(ctx, s.tasksKey(), field(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *RedisStore) MaxTaskID(ctx context.Context) (uint, error) {
	keys, err := s.client.HKeys(ctx, s.tasksKey()).Result()
	if err != nil {
		return 0, err
	}
	var max uint
	for _, k := range keys {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad task key %q: %w", k, err)
		}
		if uint(id) > max {
			max = uint(id)
		}
	}
	return max, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
