package main

import (
    "context"

    "github.com/hajimehoshi/ebiten/v2"
    "github.com/hajimehoshi/ebiten/v2/inpututil"
)

type SnakeGame struct {
    host *Host
    keys map[ebiten.Key]byte
    pauseKey ebiten.Key
    quitKey ebiten.Key
    image *ebiten.Image
    quit context.Context
    cancel context.CancelFunc
}

func MakeSnakeGame(host *Host, config ConfigData, quit context.Context, cancel context.CancelFunc) *SnakeGame {
    return &SnakeGame{
        host: host,
        keys: config.KeyMapping(),
        pauseKey: parseKey(config.Keys.Pause, ebiten.KeyP),
        quitKey: parseKey(config.Keys.Quit, ebiten.KeyEscape),
        image: ebiten.NewImage(ScreenWidth, ScreenHeight),
        quit: quit,
        cancel: cancel,
    }
}

func (game *SnakeGame) Update() error {
    if game.quit.Err() != nil {
        return ebiten.Termination
    }

    keys := inpututil.AppendJustPressedKeys(nil)
    for _, key := range keys {
        switch key {
            case game.quitKey, ebiten.KeyCapsLock:
                game.cancel()
                return ebiten.Termination
            case game.pauseKey:
                game.host.TogglePause()
            default:
                value, ok := game.keys[key]
                if ok {
                    game.host.Press(value)
                }
        }
    }

    return nil
}

func (game *SnakeGame) Draw(screen *ebiten.Image) {
    frame := game.host.Frame()
    game.image.WritePixels(frame.Pixels)
    screen.DrawImage(game.image, nil)
}

/* ebiten scales the 32x32 logical screen up to the window */
func (game *SnakeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
    return ScreenWidth, ScreenHeight
}

func RunWindow(game *SnakeGame, scale int) error {
    ebiten.SetWindowTitle("Snake game")
    ebiten.SetWindowSize(ScreenWidth * scale, ScreenHeight * scale)
    ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
    return ebiten.RunGame(game)
}
