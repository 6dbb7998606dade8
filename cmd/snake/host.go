package main

import (
    "context"
    "math/rand/v2"
    "sync"
    "time"

    m6502 "github.com/kazzmir/m6502/lib"
)

/* the program polls these zero page locations */
const InputAddress uint16 = 0x00ff
const RandomAddress uint16 = 0x00fe

/* the direction keys as the program expects them, ascii w/s/a/d */
const (
    KeyUp byte = 0x77
    KeyDown byte = 0x73
    KeyLeft byte = 0x61
    KeyRight byte = 0x64
)

/* Host owns everything the snake program sees outside of its own memory: key
 * presses, the random byte and the screen. Its Step method runs on the cpu
 * goroutine while Press and Frame are called from the renderer.
 */
type Host struct {
    keys chan byte
    random *rand.Rand
    screen Screen

    lock sync.Mutex
    frame Screen
    paused bool

    /* signalled whenever a new frame is published */
    updates chan struct{}
    /* optional, receives a copy of every published frame */
    Frames chan []byte

    StepDelay time.Duration
    quit context.Context
}

func MakeHost(quit context.Context, seed uint64, stepDelay time.Duration) *Host {
    return &Host{
        keys: make(chan byte, 16),
        random: rand.New(rand.NewPCG(seed, seed ^ 0x6502)),
        screen: MakeScreen(),
        frame: MakeScreen(),
        updates: make(chan struct{}, 1),
        StepDelay: stepDelay,
        quit: quit,
    }
}

/* queue a key for the program, dropped if the program is not keeping up */
func (host *Host) Press(key byte){
    select {
        case host.keys <- key:
        default:
    }
}

func (host *Host) TogglePause(){
    host.lock.Lock()
    defer host.lock.Unlock()
    host.paused = !host.paused
}

func (host *Host) IsPaused() bool {
    host.lock.Lock()
    defer host.lock.Unlock()
    return host.paused
}

/* a copy of the last published frame */
func (host *Host) Frame() Screen {
    host.lock.Lock()
    defer host.lock.Unlock()
    return host.frame.Copy()
}

func (host *Host) Updates() <-chan struct{} {
    return host.updates
}

func (host *Host) publish(){
    host.lock.Lock()
    copy(host.frame.Pixels, host.screen.Pixels)
    host.lock.Unlock()

    select {
        case host.updates <- struct{}{}:
        default:
    }

    if host.Frames != nil {
        select {
            case host.Frames <- host.screen.Copy().Pixels:
            default:
        }
    }
}

/* wait while paused, returns false if the host is shutting down */
func (host *Host) waitForUnpause() bool {
    for host.IsPaused() {
        select {
            case <-host.quit.Done():
                return false
            case <-time.After(time.Millisecond * 20):
        }
    }
    return host.quit.Err() == nil
}

/* Runs before every instruction: deliver pending keys, refresh the random
 * byte, publish the screen if it changed, then wait out the step delay.
 */
func (host *Host) Step(cpu *m6502.CPUState) bool {
    if !host.waitForUnpause() {
        return false
    }

    for done := false; !done; {
        select {
            case key := <-host.keys:
                cpu.StoreMemory(InputAddress, key)
            default:
                done = true
        }
    }

    cpu.StoreMemory(RandomAddress, byte(host.random.IntN(15) + 1))

    if host.screen.Update(cpu.Bus) {
        host.publish()
    }

    if host.StepDelay > 0 {
        time.Sleep(host.StepDelay)
    }

    return true
}
