package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Zhanerrke588595/it-events/internal/client/client"
	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/repositories/credentials"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/cryptox"
	"github.com/Zhanerrke588595/it-events/internal/logging"
)

var cheapParams = cryptox.Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func cheapHash(pw []byte) (string, error) {
	return cryptox.HashPasswordWithParams(pw, cheapParams)
}

// fakeBackend is an in-memory client.Client.
type fakeBackend struct {
	mu     sync.Mutex
	seq    int
	users  []models.User
	events []models.Event
	books  []models.Booking

	// Err, when set for a method name, is returned instead of doing the call.
	Err map[string]error

	// patchResponse overrides what PatchEvent returns.
	patchResponse json.RawMessage

	lastPatch map[string]any
	calls     []string
}

var _ client.Client = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{Err: map[string]error{}}
}

func (f *fakeBackend) hit(name string) error {
	f.calls = append(f.calls, name)
	return f.Err[name]
}

func (f *fakeBackend) nextID() string {
	f.seq++
	return fmt.Sprintf("%d", f.seq)
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hit("Ping")
}

func (f *fakeBackend) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("FindUsersByEmail"); err != nil {
		return nil, err
	}
	var out []models.User
	for _, u := range f.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("ListUsers"); err != nil {
		return nil, err
	}
	return slices.Clone(f.users), nil
}

func (f *fakeBackend) GetUser(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetUser"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBackend) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("CreateUser"); err != nil {
		return nil, err
	}
	u.ID = f.nextID()
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeBackend) UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("UpdateUser"); err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			u.ID = id
			f.users[i] = u
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBackend) ListEvents(ctx context.Context) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("ListEvents"); err != nil {
		return nil, err
	}
	out := make([]models.Event, len(f.events))
	for i, e := range f.events {
		out[i] = e.Clone()
	}
	return out, nil
}

func (f *fakeBackend) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetEvent"); err != nil {
		return nil, err
	}
	for _, e := range f.events {
		if e.ID == id {
			c := e.Clone()
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBackend) CreateEvent(ctx context.Context, e models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("CreateEvent"); err != nil {
		return nil, err
	}
	e.ID = f.nextID()
	f.events = append(f.events, e.Clone())
	return &e, nil
}

func (f *fakeBackend) UpdateEvent(ctx context.Context, id string, e models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("UpdateEvent"); err != nil {
		return nil, err
	}
	for i := range f.events {
		if f.events[i].ID == id {
			e.ID = id
			f.events[i] = e.Clone()
			return &e, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBackend) PatchEvent(ctx context.Context, id string, patch map[string]any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("PatchEvent"); err != nil {
		return nil, err
	}
	f.lastPatch = patch
	if f.patchResponse != nil {
		return f.patchResponse, nil
	}
	for i := range f.events {
		if f.events[i].ID != id {
			continue
		}
		raw, err := json.Marshal(patch)
		if err != nil {
			return nil, err
		}
		merged, err := models.MergeEvent(f.events[i], raw)
		if err != nil {
			return nil, err
		}
		f.events[i] = merged
		return json.Marshal(merged)
	}
	return nil, common.ErrNotFound
}

func (f *fakeBackend) DeleteEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("DeleteEvent"); err != nil {
		return err
	}
	n := len(f.events)
	f.events = slices.DeleteFunc(f.events, func(e models.Event) bool { return e.ID == id })
	if len(f.events) == n {
		return common.ErrNotFound
	}
	return nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, b models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("CreateBooking"); err != nil {
		return nil, err
	}
	b.ID = f.nextID()
	f.books = append(f.books, b)
	return &b, nil
}

func (f *fakeBackend) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.calls, name)
}

// fakeCreds is an in-memory credentials.Repository.
type fakeCreds struct {
	kv       map[string]string
	LoadErr  error
	SaveErr  error
	ClearErr error
	cleared  int
}

var _ credentials.Repository = (*fakeCreds)(nil)

func newFakeCreds() *fakeCreds { return &fakeCreds{kv: map[string]string{}} }

func (c *fakeCreds) Get(ctx context.Context, key string) (string, error) { return c.kv[key], nil }
func (c *fakeCreds) Set(ctx context.Context, key, value string) error {
	c.kv[key] = value
	return nil
}
func (c *fakeCreds) Delete(ctx context.Context, key string) error {
	delete(c.kv, key)
	return nil
}

func (c *fakeCreds) Load(ctx context.Context) (credentials.Credentials, error) {
	if c.LoadErr != nil {
		return credentials.Credentials{}, c.LoadErr
	}
	return credentials.Credentials{Token: c.kv[credentials.KeyToken], UserID: c.kv[credentials.KeyUserID]}, nil
}

func (c *fakeCreds) Save(ctx context.Context, cr credentials.Credentials) error {
	if c.SaveErr != nil {
		return c.SaveErr
	}
	c.kv[credentials.KeyToken] = cr.Token
	c.kv[credentials.KeyUserID] = cr.UserID
	return nil
}

func (c *fakeCreds) Clear(ctx context.Context) error {
	c.cleared++
	delete(c.kv, credentials.KeyToken)
	delete(c.kv, credentials.KeyUserID)
	return c.ClearErr
}

func newTestAuth(b *fakeBackend, c *fakeCreds, st *store.Store) *authService {
	a := NewAuthService(b, c, st, logging.Nop{}).(*authService)
	a.hashPassword = cheapHash
	return a
}

func signedIn(u models.User) *store.Store {
	st := store.New(store.InitialState())
	st.Dispatch(store.SessionEstablished{User: u})
	return st
}
