// monitor.go
package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor 监控输入文件，文件被写入或替换时触发回调
type FileMonitor struct {
	target  string
	watcher *fsnotify.Watcher
	lastMod time.Time
	mu      sync.Mutex
}

// NewFileMonitor 监控filePath所在目录(编辑器保存时常常是替换文件)
func NewFileMonitor(filePath string) (*FileMonitor, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	m := &FileMonitor{target: abs, watcher: watcher}
	if info, err := os.Stat(abs); err == nil {
		m.lastMod = info.ModTime()
	}
	return m, nil
}

// Watch 阻塞直到ctx取消；handler在本goroutine内串行调用
func (m *FileMonitor) Watch(ctx context.Context, handler func(string)) error {
	defer m.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if !m.isTargetChange(event) {
				continue
			}
			handler(m.target)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (m *FileMonitor) isTargetChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != m.target {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	info, err := os.Stat(m.target)
	if err != nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !info.ModTime().After(m.lastMod) {
		return false
	}
	m.lastMod = info.ModTime()
	return true
}
