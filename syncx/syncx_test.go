// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"licensehdr/testutil"
)

func TestLazy(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var l Lazy[int]
		var count int
		var mu sync.Mutex

		f := func() int {
			mu.Lock()
			defer mu.Unlock()
			count++
			return count
		}

		v1 := l.Get(f)
		testutil.AssertEqual(t, v1, 1)

		v2 := l.Get(f)
		testutil.AssertEqual(t, v2, 1)

		testutil.AssertEqual(t, count, 1)

		var l2 Lazy[string]

		f2 := func() (string, error) {
			return "", errors.New("something went wrong")
		}

		notnil := func(err error) {
			if err == nil {
				t.Fatalf("err must not be nil")
			}
		}

		ev1, err := l2.GetErr(f2)
		testutil.AssertEqual(t, ev1, "")
		notnil(err)

		ev2, err := l2.GetErr(f2)
		testutil.AssertEqual(t, ev2, "")
		notnil(err)
	})
}

func TestLimitedWaitGroup(t *testing.T) {
	t.Parallel()

	const concurrency = 5

	t.Run("add and wait", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			lwg := NewLimitedWaitGroup(concurrency)
			for range 10 {
				lwg.Add(1)
				go func() {
					defer lwg.Done()
					time.Sleep(100 * time.Millisecond)
				}()
			}
			lwg.Wait()
		})
	})

	t.Run("go", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			lwg := NewLimitedWaitGroup(concurrency)
			var n atomic.Int32
			for range 10 {
				lwg.Go(func() {
					n.Add(1)
				})
			}
			lwg.Wait()
			testutil.AssertEqual(t, int(n.Load()), 10)
		})
	})

	t.Run("limits concurrency", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			lwg := NewLimitedWaitGroup(concurrency)
			var running atomic.Int32
			var maxConcurrent atomic.Int32

			for range 20 {
				lwg.Add(1)
				go func() {
					defer lwg.Done()

					running.Add(1)
					defer running.Add(-1)

					if v := running.Load(); v > maxConcurrent.Load() {
						maxConcurrent.Store(v)
					}

					time.Sleep(100 * time.Millisecond)
				}()
			}
			lwg.Wait()

			testutil.AssertEqual(t, int(maxConcurrent.Load()), concurrency)
		})
	})
}

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("load and store", func(t *testing.T) {
		var m Map[string, int]

		_, ok := m.Load("a")
		testutil.AssertEqual(t, ok, false)

		m.Store("a", 1)
		v, ok := m.Load("a")
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, v, 1)

		actual, loaded := m.LoadOrStore("a", 2)
		testutil.AssertEqual(t, loaded, true)
		testutil.AssertEqual(t, actual, 1)

		v, loaded = m.LoadAndDelete("a")
		testutil.AssertEqual(t, loaded, true)
		testutil.AssertEqual(t, v, 1)

		_, ok = m.Load("a")
		testutil.AssertEqual(t, ok, false)
	})

	t.Run("range", func(t *testing.T) {
		var m Map[int, int]
		for i := range 10 {
			m.Store(i, i*i)
		}
		var count int
		m.Range(func(k, v int) bool {
			testutil.AssertEqual(t, v, k*k)
			count++
			return true
		})
		testutil.AssertEqual(t, count, 10)
	})

	t.Run("concurrent stores", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var m Map[int, int]
			var wg sync.WaitGroup
			for i := range 100 {
				wg.Go(func() {
					m.Store(i, i)
				})
			}
			wg.Wait()
			for i := range 100 {
				v, ok := m.Load(i)
				testutil.AssertEqual(t, ok, true)
				testutil.AssertEqual(t, v, i)
			}
		})
	})
}
