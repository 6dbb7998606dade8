package util

import (
    "sync"
    "context"
)

/* Goroutines that share one cancellable context, such as the cpu loop and
 * the renderer of a host. The first error returned by a SpawnErr function
 * cancels everybody else and is reported by Wait.
 */
type ThreadGroup struct {
    wait sync.WaitGroup
    quit context.Context
    cancel context.CancelFunc

    lock sync.Mutex
    err error
}

type ThreadFuncCancel func(quit context.Context, cancel context.CancelFunc)
type ThreadFuncErr func(quit context.Context) error
type ThreadFunc func()

func NewThreadGroup(parent context.Context) *ThreadGroup {
    quit, cancel := context.WithCancel(parent)
    return &ThreadGroup{
        quit: quit,
        cancel: cancel,
    }
}

/* a group with its own threads that is cancelled along with this one.
 * Wait on this group also waits for the subgroup
 */
func (group *ThreadGroup) SubGroup() *ThreadGroup {
    out := NewThreadGroup(group.quit)

    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        <-out.quit.Done()
        out.wait.Wait()
        if err := out.Err(); err != nil {
            group.setErr(err)
        }
    }()

    return out
}

func (group *ThreadGroup) setErr(err error){
    group.lock.Lock()
    if group.err == nil {
        group.err = err
    }
    group.lock.Unlock()
    group.cancel()
}

func (group *ThreadGroup) SpawnWithCancel(f ThreadFuncCancel){
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        f(group.quit, group.cancel)
    }()
}

func (group *ThreadGroup) SpawnErr(f ThreadFuncErr){
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        err := f(group.quit)
        if err != nil {
            group.setErr(err)
        }
    }()
}

func (group *ThreadGroup) Spawn(f ThreadFunc) {
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        f()
    }()
}

func (group *ThreadGroup) Cancel(){
    group.cancel()
}

func (group *ThreadGroup) Context() context.Context {
    return group.quit
}

func (group *ThreadGroup) Done() <-chan struct{} {
    return group.quit.Done()
}

/* the first error from a SpawnErr function, if any */
func (group *ThreadGroup) Err() error {
    group.lock.Lock()
    defer group.lock.Unlock()
    return group.err
}

func (group *ThreadGroup) Wait() error {
    group.wait.Wait()
    group.cancel()
    return group.Err()
}
