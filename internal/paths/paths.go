package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName  = "iconforge"
	LogFileName = "builds.log"
	DBFileName  = "builds.db"
	DirPerm     = 0755
	FilePerm    = 0644
)

// DataDir returns the platform-specific data directory for iconforge:
//   - Windows: %APPDATA%\iconforge
//   - Unix:    ~/.config/iconforge
//
// Falls back to os.TempDir()/iconforge if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
