package util

import (
    "os"
    "os/exec"
    "runtime"
)

/* false only when glxinfo exists and fails to run, which means there is no
 * usable display for a gl window. without glxinfo we cannot tell and assume yes
 */
func HasGlxinfo() bool {
    glxinfo_path, err := exec.LookPath("glxinfo")
    if err != nil {
        return true
    }
    glxinfo := exec.Command(glxinfo_path)
    err = glxinfo.Run()
    return err == nil
}

/* whether a window can be opened at all. on linux this needs a display server */
func HasDisplay() bool {
    if runtime.GOOS == "linux" {
        if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
            return false
        }
        return HasGlxinfo()
    }
    return true
}
