package renderhost

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// RunPython executes a Python script inside a headless host process loaded
// with the given blend file. The script is written to a temp file and passed
// with --python, which avoids the quoting pitfalls of --python-expr
func (b *BlenderHost) RunPython(ctx context.Context, blendFile, script string, extraEnv []string) (string, error) {
	// Create a temporary script file for the host to execute
	tempFile, err := os.CreateTemp("", "icon-render-*.py")
	if err != nil {
		return "", fmt.Errorf("failed to create temp script file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString(script); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write to temp script file: %w", err)
	}
	tempFile.Close()

	b.logger.Debug("Executing host script",
		"script_file", tempFile.Name(),
		"blend_file", blendFile,
		"script_length", len(script))

	// Optionally save to debug directory for manual replay against the host
	if debugDir := os.Getenv("BLENDER_DEBUG_DIR"); debugDir != "" {
		timestamp := time.Now().Format("20060102-150405.000")
		debugFile := filepath.Join(debugDir, fmt.Sprintf("icon-%s.py", timestamp))
		if err := os.WriteFile(debugFile, []byte(script), 0644); err != nil {
			b.logger.Warn("Failed to save debug script", "path", debugFile, "error", err)
		} else {
			b.logger.Debug("Saved host script to debug directory", "path", debugFile)
		}
	}

	// --background keeps the host headless; --factory-startup shields the
	// render from user preferences and addons on the build machine
	args := []string{"--background", "--factory-startup"}
	args = append(args, b.config.Blender.ExtraArgs...)
	args = append(args, blendFile, "--python", tempFile.Name())

	cmd := exec.CommandContext(ctx, b.config.Blender.Binary, args...)
	cmd.Env = append(os.Environ(), extraEnv...)

	// Capture stdout and stderr separately for better debugging
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	stdoutStr := stdout.String()
	stderrStr := stderr.String()

	if err != nil {
		// Build detailed error message: the host's failure reason is only
		// ever visible in its output streams
		errMsg := fmt.Sprintf("host error: %v", err)
		if len(stdoutStr) > 0 {
			errMsg += fmt.Sprintf("\nstdout: %s", stdoutStr)
		}
		if len(stderrStr) > 0 {
			errMsg += fmt.Sprintf("\nstderr: %s", stderrStr)
		}
		errMsg += fmt.Sprintf("\nblend_file: %s", blendFile)

		return stdoutStr + stderrStr, fmt.Errorf("%s", errMsg)
	}

	// Return combined output (stdout + stderr)
	output := stdoutStr
	if len(stderrStr) > 0 {
		output += stderrStr
	}

	b.logger.Debug("Host script executed successfully",
		"output_length", len(output))

	return output, nil
}
