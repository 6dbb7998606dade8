package main

import (
    "os"
    "log"
    "time"
    "encoding/json"
    "path/filepath"

    "github.com/hajimehoshi/ebiten/v2"
)

const CurrentVersion = 1

/* key names as understood by ebiten, e.g. "W", "ArrowUp", "Space" */
type ConfigKeys struct {
    Up string `json:"up,omitempty"`
    Down string `json:"down,omitempty"`
    Left string `json:"left,omitempty"`
    Right string `json:"right,omitempty"`
    Pause string `json:"pause,omitempty"`
    Quit string `json:"quit,omitempty"`
}

type ConfigData struct {
    Version int `json:"version,omitempty"`
    /* window size is the 32x32 screen times this */
    Scale int `json:"scale,omitempty"`
    /* how long the host sleeps after every instruction */
    StepDelay time.Duration `json:"step-delay,omitempty"`
    Keys ConfigKeys `json:"keys,omitempty"`
}

/* make the directory where the config file lives, which is ~/.config/m6502 on linux */
func GetOrCreateConfigDir() (string, error) {
    configDir, err := os.UserConfigDir()
    if err != nil {
        return "", err
    }
    configPath := filepath.Join(configDir, "m6502")
    err = os.MkdirAll(configPath, 0755)
    if err != nil {
        return "", err
    }

    return configPath, nil
}

func DefaultConfigData() ConfigData {
    return ConfigData{
        Version: CurrentVersion,
        Scale: 10,
        StepDelay: 7 * time.Microsecond,
        Keys: ConfigKeys{
            Up: "W",
            Down: "S",
            Left: "A",
            Right: "D",
            Pause: "P",
            Quit: "Escape",
        },
    }
}

/* fill in anything the file left out with the defaults */
func (data *ConfigData) fillDefaults(){
    defaults := DefaultConfigData()
    if data.Scale <= 0 {
        data.Scale = defaults.Scale
    }
    if data.StepDelay < 0 {
        data.StepDelay = defaults.StepDelay
    }
    fill := func(value *string, fallback string){
        if *value == "" {
            *value = fallback
        }
    }
    fill(&data.Keys.Up, defaults.Keys.Up)
    fill(&data.Keys.Down, defaults.Keys.Down)
    fill(&data.Keys.Left, defaults.Keys.Left)
    fill(&data.Keys.Right, defaults.Keys.Right)
    fill(&data.Keys.Pause, defaults.Keys.Pause)
    fill(&data.Keys.Quit, defaults.Keys.Quit)
}

func LoadConfigData() (ConfigData, error) {
    configPath, err := GetOrCreateConfigDir()
    if err != nil {
        return DefaultConfigData(), err
    }
    config := filepath.Join(configPath, "config.json")
    file, err := os.Open(config)
    if err != nil {
        return DefaultConfigData(), err
    }
    defer file.Close()

    var data ConfigData
    decoder := json.NewDecoder(file)
    err = decoder.Decode(&data)
    if err != nil {
        log.Printf("Could not load config data: %v", err)
        return DefaultConfigData(), err
    }

    if data.Version != CurrentVersion {
        return DefaultConfigData(), nil
    }

    data.fillDefaults()

    return data, nil
}

/* create the config.json file in the config dir */
func SaveConfigData(data ConfigData) error {
    configPath, err := GetOrCreateConfigDir()
    if err != nil {
        return err
    }
    config := filepath.Join(configPath, "config.json")

    file, err := os.Create(config)
    if err != nil {
        return err
    }
    defer file.Close()

    encoder := json.NewEncoder(file)
    encoder.SetIndent("", "  ")
    return encoder.Encode(data)
}

/* map ebiten keys to the bytes the program reads from the input address */
func (data *ConfigData) KeyMapping() map[ebiten.Key]byte {
    out := make(map[ebiten.Key]byte)
    add := func(name string, value byte){
        var key ebiten.Key
        err := key.UnmarshalText([]byte(name))
        if err != nil {
            log.Printf("Warning: unknown key '%v' in config: %v", name, err)
            return
        }
        out[key] = value
    }

    add(data.Keys.Up, KeyUp)
    add(data.Keys.Down, KeyDown)
    add(data.Keys.Left, KeyLeft)
    add(data.Keys.Right, KeyRight)

    return out
}

func parseKey(name string, fallback ebiten.Key) ebiten.Key {
    var key ebiten.Key
    if key.UnmarshalText([]byte(name)) != nil {
        return fallback
    }
    return key
}
