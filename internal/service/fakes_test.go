package service

import (
	"context"
	"sync"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// fakeBugRepo - потокобезопасная замена BugRepository в памяти.
// При alwaysConflict CompareAndSwap всегда возвращает VERSION_CONFLICT.
type fakeBugRepo struct {
	mu             sync.Mutex
	bugs           map[string]storage.Bug
	alwaysConflict bool
	casCalls       int
}

func newFakeBugRepo() *fakeBugRepo {
	return &fakeBugRepo{bugs: make(map[string]storage.Bug)}
}

func (f *fakeBugRepo) Create(_ context.Context, bug storage.Bug) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bugs[bug.ID] = bug
	return nil
}

func (f *fakeBugRepo) Get(_ context.Context, bugID string) (storage.Bug, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bug, ok := f.bugs[bugID]
	if !ok {
		return storage.Bug{}, apperrors.New(apperrors.ErrNotFound)
	}
	return bug, nil
}

func (f *fakeBugRepo) List(_ context.Context, filter storage.BugFilter) ([]storage.Bug, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []storage.Bug
	for _, bug := range f.bugs {
		if filter.Matches(bug) {
			res = append(res, bug)
		}
	}
	return res, nil
}

func (f *fakeBugRepo) CompareAndSwap(_ context.Context, bugID string, expectedVersion int64, mutate func(*storage.Bug)) (storage.Bug, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.alwaysConflict {
		return storage.Bug{}, apperrors.New(apperrors.ErrVersionConflict)
	}
	bug, ok := f.bugs[bugID]
	if !ok {
		return storage.Bug{}, apperrors.New(apperrors.ErrNotFound)
	}
	if bug.Version != expectedVersion {
		return storage.Bug{}, apperrors.New(apperrors.ErrVersionConflict)
	}
	mutate(&bug)
	bug.Version = expectedVersion + 1
	f.bugs[bugID] = bug
	return bug, nil
}

func (f *fakeBugRepo) CountByStatus(_ context.Context) ([]storage.BugStats, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byProject := make(map[string]*storage.BugStats)
	for _, bug := range f.bugs {
		st, ok := byProject[bug.ProjectID]
		if !ok {
			st = &storage.BugStats{ProjectID: bug.ProjectID}
			byProject[bug.ProjectID] = st
		}
		switch bug.Status {
		case storage.StatusOpen:
			st.Open++
		case storage.StatusInProgress:
			st.InProgress++
		case storage.StatusClosed:
			st.Closed++
		}
	}
	var res []storage.BugStats
	for _, st := range byProject {
		res = append(res, *st)
	}
	return res, nil
}

// fakeProjectRepo - замена ProjectRepository в памяти. Для проверки
// ссылочного инварианта при удалении держит ссылку на репозиторий багов.
type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]storage.Project
	bugs     *fakeBugRepo
}

func newFakeProjectRepo(bugs *fakeBugRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]storage.Project), bugs: bugs}
}

func (f *fakeProjectRepo) Create(_ context.Context, project storage.Project) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.Name == project.Name {
			return apperrors.New(apperrors.ErrProjectExists)
		}
	}
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) Get(_ context.Context, projectID string) (storage.Project, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return storage.Project{}, apperrors.New(apperrors.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProjectRepo) Exists(_ context.Context, projectID string) (bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.projects[projectID]
	return ok, nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, projectID string) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[projectID]; !ok {
		return apperrors.New(apperrors.ErrNotFound)
	}
	if f.bugs != nil {
		referenced, _ := f.bugs.List(ctx, storage.BugFilter{ProjectID: projectID})
		if len(referenced) > 0 {
			return apperrors.New(apperrors.ErrProjectHasBugs)
		}
	}
	delete(f.projects, projectID)
	return nil
}

// fakeUserRepo - замена UserRepository в памяти.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]storage.User
	secrets map[string]string
	tokens  map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]storage.User),
		secrets: make(map[string]string),
		tokens:  make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user storage.User, secret, token string) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperrors.New(apperrors.ErrUsernameTaken)
		}
	}
	f.users[user.ID] = user
	f.secrets[user.Username] = secret
	f.tokens[token] = user.ID
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, userID string) (storage.User, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return storage.User{}, apperrors.New(apperrors.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) Exists(_ context.Context, userID string) (bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeUserRepo) VerifyCredentials(_ context.Context, username, secret string) (storage.User, string, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.secrets[username] != secret {
		return storage.User{}, "", apperrors.New(apperrors.ErrAuthFailure)
	}
	for token, id := range f.tokens {
		u := f.users[id]
		if u.Username == username {
			return u, token, nil
		}
	}
	return storage.User{}, "", apperrors.New(apperrors.ErrAuthFailure)
}

func (f *fakeUserRepo) ResolveToken(_ context.Context, token string) (storage.User, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[token]
	if !ok {
		return storage.User{}, apperrors.New(apperrors.ErrAuthFailure)
	}
	return f.users[id], nil
}

// fakeBlobStore - замена BlobStore в памяти.
type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) ([]byte, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, apperrors.New(apperrors.ErrNotFound)
	}
	return data, nil
}
