package service

import (
	"context"
	"errors"
	"sync"

	"catalog/navigator/internal/client"
	"catalog/navigator/internal/domain"
	"catalog/navigator/internal/domain/task"
)

const electronicsPayload = `{"success": true, "data": [
	{"id": 1, "category_name": "Electronics", "children": [
		{"id": 2, "name": "Computers", "subcategories": [
			{"id": 3, "title": "Laptops"},
			{"id": 4, "title": "Desktops"}
		]},
		{"id": 5, "name": "Phones", "children": []}
	]}
]}`

type fakeSource struct {
	mu      sync.Mutex
	body    string
	format  client.Format
	err     error
	fetches int
	onFetch func()
}

func (f *fakeSource) Name() string {
	return "fake://categories"
}

func (f *fakeSource) Fetch(ctx context.Context) (*client.Payload, error) {
	f.mu.Lock()
	f.fetches++
	body, err, hook := f.body, f.err, f.onFetch
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	format := f.format
	if format == "" {
		format = client.FormatJSON
	}
	return &client.Payload{Source: f.Name(), Format: format, Body: []byte(body)}, nil
}

func (f *fakeSource) setBody(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body = body
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []task.Task
	err   error
}

func (p *fakePublisher) Publish(ctx context.Context, t task.Task) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.tasks = append(p.tasks, t)
	return "1-0", nil
}

func (p *fakePublisher) Close() error {
	return nil
}

func (p *fakePublisher) published() []task.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]task.Task(nil), p.tasks...)
}

type savedSelection struct {
	owner     string
	selection domain.Selection
}

type fakeRepository struct {
	mu    sync.Mutex
	saved []savedSelection
	err   error
}

func (r *fakeRepository) SaveSelection(ctx context.Context, owner string, selection domain.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, savedSelection{owner: owner, selection: selection})
	return nil
}

var errUnavailable = errors.New("service unavailable")
