// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"testing"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

// stoppableWorker tracks both Run and Stop calls.
type stoppableWorker struct {
	runCount  int
	stopCount int
}

func (s *stoppableWorker) Run() {
	s.runCount++
}

func (s *stoppableWorker) Stop() {
	s.stopCount++
}

// orderWorker records its id into a shared slice when run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run() {
	*o.order = append(*o.order, o.id)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

func TestWorkers_Stop_StopsStoppableWorkers(t *testing.T) {
	plain := &mockWorker{}
	s1 := &stoppableWorker{}
	s2 := &stoppableWorker{}

	ws := &Workers{workers: []Worker{s1, plain, s2}}
	ws.Run()
	ws.Stop()

	for i, s := range []*stoppableWorker{s1, s2} {
		if s.stopCount != 1 {
			t.Errorf("worker[%d]: expected stopCount=1, got %d", i, s.stopCount)
		}
	}
	if plain.runCount != 1 {
		t.Errorf("expected runCount=1 for worker without Stop, got %d", plain.runCount)
	}
}

func TestWorkers_Stop_Empty(t *testing.T) {
	ws := &Workers{}

	// Should not panic when no worker supports termination
	ws.Stop()
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	ws := &Workers{workers: []Worker{
		&orderWorker{id: 1, order: &order},
		&orderWorker{id: 2, order: &order},
		&orderWorker{id: 3, order: &order},
	}}
	ws.Run()

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}
