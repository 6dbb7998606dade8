//go:build !windows

package util

import (
    "os/exec"
    "os"
    "io"
    "log"
    "fmt"
    "time"
    "syscall"
    "context"
    "strconv"
)

func FindFfmpegBinary() (string, error) {
    return exec.LookPath("ffmpeg")
}

func niceSize(path string) string {
    info, err := os.Stat(path)
    if err != nil {
        return ""
    }

    size := float64(info.Size())
    suffixes := []string{"b", "kb", "mb", "gb"}
    suffix := 0

    for size > 1024 && suffix < len(suffixes) - 1 {
        size /= 1024
        suffix += 1
    }

    return fmt.Sprintf("%.2f%v", size, suffixes[suffix])
}

func waitForProcess(process *os.Process, timeout int){
    done := time.Now().Add(time.Second * time.Duration(timeout))
    dead := false
    for time.Now().Before(done) {
        /* signal 0 does nothing, but fails once the process is gone */
        err := process.Signal(syscall.Signal(0))
        if err == nil {
            time.Sleep(time.Millisecond * 100)
        } else {
            dead = true
            break
        }
    }
    if !dead {
        /* Didn't die on its own, so we forcifully kill it */
        log.Printf("Killing pid %v", process.Pid)
        process.Kill()
    }
    process.Wait()
}

func drain(reader io.ReadCloser){
    buffer := make([]byte, 4096)
    for {
        _, err := reader.Read(buffer)
        if err != nil {
            return
        }
    }
}

/* Encode RGBA frames of width x height pixels into a video file. Each frame is
 * timestamped when it arrives, so frames only need to be sent when the screen
 * changes. Blocks until mainQuit is done.
 */
func RecordVideo(mainQuit context.Context, videoOut string, width int, height int, scale int, frames <-chan []byte) error {
    ffmpeg_binary_path, err := FindFfmpegBinary()
    if err != nil {
        return fmt.Errorf("Could not find ffmpeg: %v", err)
    }

    if scale < 1 {
        scale = 1
    }

    log.Printf("Launching ffmpeg")
    ffmpeg_process := exec.Command(ffmpeg_binary_path,
    "-use_wallclock_as_timestamps", "1", // treat the incoming data as a live stream
    "-f", "rawvideo",
    "-pix_fmt", "rgba",
    "-s", fmt.Sprintf("%vx%v", width, height),
    "-i", "pipe:0",

    /* keep the pixels sharp when scaling up */
    "-vf", "scale=iw*" + strconv.Itoa(scale) + ":ih*" + strconv.Itoa(scale) + ":flags=neighbor",
    "-vsync", "vfr",
    "-pix_fmt", "yuv420p",
    "-tune", "zerolatency", // fast encoding
    "-y", // overwrite output if the file already exists
    videoOut)

    video_writer, err := ffmpeg_process.StdinPipe()
    if err != nil {
        return err
    }

    stdout, err := ffmpeg_process.StdoutPipe()
    if err != nil {
        log.Printf("Could not get ffmpeg stdout: %v", err)
        return err
    }

    stderr, err := ffmpeg_process.StderrPipe()
    if err != nil {
        log.Printf("Could not get ffmpeg stderr: %v", err)
        return err
    }

    err = ffmpeg_process.Start()
    if err != nil {
        log.Printf("Could not start ffmpeg: %v", err)
        return err
    }

    go drain(stdout)
    go drain(stderr)

    log.Printf("Recording to %v", videoOut)

    startTime := time.Now()
    frameSize := width * height * 4

    for {
        select {
            case <-mainQuit.Done():
                /* ffmpeg will normally close on its own if its input is closed */
                video_writer.Close()
                ffmpeg_process.Process.Signal(os.Interrupt)
                waitForProcess(ffmpeg_process.Process, 10)
                log.Printf("Recording has ended. Saved '%v' for %v size %v", videoOut, time.Now().Sub(startTime), niceSize(videoOut))
                return nil
            case frame := <-frames:
                if len(frame) != frameSize {
                    log.Printf("Warning: dropping frame of %v bytes, expected %v", len(frame), frameSize)
                    continue
                }
                _, err := video_writer.Write(frame)
                if err != nil {
                    log.Printf("Could not write to ffmpeg: %v", err)
                }
        }
    }
}
