// Package gdrive adapts a Google Drive folder to the adapter
// interface. Drive stores names verbatim, so remote components travel
// unescaped in both directions; only the query strings sent to the
// Files API need quoting.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
	"github.com/skovgaard/driftsync/internal/logger"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Adapter implements the adapter interface on top of the Drive v3 API.
type Adapter struct {
	service *drive.Service
	rootID  string

	mu      sync.Mutex
	idCache map[fspath.RemotePath]string
}

// New connects to Drive with the given token source and resolves the
// configured root folder path. An empty root uses the Drive root.
func New(ctx context.Context, ts oauth2.TokenSource, root fspath.RemotePath) (*Adapter, error) {
	service, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	a := &Adapter{
		service: service,
		rootID:  "root",
		idCache: make(map[fspath.RemotePath]string),
	}

	if !root.IsEmpty() {
		id, err := a.resolveID(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("resolve root %q: %w", root, err)
		}
		a.rootID = id
	}
	return a, nil
}

// normalize rebuilds a path from its components so cache keys are
// always absolute and free of duplicate separators.
func normalize(remote fspath.RemotePath) fspath.RemotePath {
	out := fspath.RemotePath("/")
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			return out
		}
		out = out.AppendComponent(string(component))
	}
}

// resolveID walks the path one component at a time from the Drive
// root, caching every intermediate folder id.
func (a *Adapter) resolveID(ctx context.Context, remote fspath.RemotePath) (string, error) {
	remote = normalize(remote)
	if remote == "/" {
		return a.rootID, nil
	}

	a.mu.Lock()
	if id, ok := a.idCache[remote]; ok {
		a.mu.Unlock()
		return id, nil
	}
	a.mu.Unlock()

	parentID := a.rootID
	walked := fspath.RemotePath("/")
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			break
		}
		walked = walked.AppendComponent(string(component))

		a.mu.Lock()
		id, cached := a.idCache[walked]
		a.mu.Unlock()
		if cached {
			parentID = id
			continue
		}

		id, err := a.findChildID(ctx, parentID, string(component))
		if err != nil {
			return "", err
		}

		a.mu.Lock()
		a.idCache[walked] = id
		a.mu.Unlock()
		parentID = id
	}
	return parentID, nil
}

func (a *Adapter) findChildID(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQueryString(name), parentID)
	list, err := a.service.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id)").
		PageSize(1).
		Do()
	if err != nil {
		return "", mapError(err)
	}
	if len(list.Files) == 0 {
		return "", domain.ErrNotFound
	}
	return list.Files[0].Id, nil
}

// ensureFolderID resolves a folder path, creating missing components.
func (a *Adapter) ensureFolderID(ctx context.Context, remote fspath.RemotePath) (string, error) {
	parentID := a.rootID
	walked := fspath.RemotePath("/")
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			return parentID, nil
		}
		walked = walked.AppendComponent(string(component))

		a.mu.Lock()
		id, cached := a.idCache[walked]
		a.mu.Unlock()
		if cached {
			parentID = id
			continue
		}

		id, err := a.findChildID(ctx, parentID, string(component))
		if errors.Is(err, domain.ErrNotFound) {
			folder, cerr := a.service.Files.Create(&drive.File{
				Name:     string(component),
				MimeType: folderMimeType,
				Parents:  []string{parentID},
			}).Context(ctx).Fields("id").Do()
			if cerr != nil {
				return "", mapError(cerr)
			}
			id = folder.Id
		} else if err != nil {
			return "", err
		}

		a.mu.Lock()
		a.idCache[walked] = id
		a.mu.Unlock()
		parentID = id
	}
}

// invalidate drops a path and everything below it from the id cache.
func (a *Adapter) invalidate(remote fspath.RemotePath) {
	a.mu.Lock()
	defer a.mu.Unlock()
	remote = normalize(remote)
	prefix := string(remote)
	for cached := range a.idCache {
		if cached == remote || strings.HasPrefix(string(cached), prefix+"/") {
			delete(a.idCache, cached)
		}
	}
}

// List returns all entries directly under the given path.
func (a *Adapter) List(ctx context.Context, remote fspath.RemotePath) ([]domain.FileInfo, error) {
	folderID, err := a.resolveID(ctx, remote)
	if err != nil {
		return nil, err
	}

	var result []domain.FileInfo
	pageToken := ""
	for {
		call := a.service.Files.List().
			Context(ctx).
			Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
			Fields("nextPageToken, files(id, name, mimeType, size, modifiedTime, md5Checksum)").
			PageSize(1000)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return nil, mapError(err)
		}
		for _, f := range list.Files {
			result = append(result, fileInfoFromDrive(remote.AppendComponent(f.Name), f))
		}
		if list.NextPageToken == "" {
			return result, nil
		}
		pageToken = list.NextPageToken
	}
}

// Read downloads the file content.
func (a *Adapter) Read(ctx context.Context, remote fspath.RemotePath) (io.ReadCloser, error) {
	id, err := a.resolveID(ctx, remote)
	if err != nil {
		return nil, err
	}

	meta, err := a.service.Files.Get(id).Context(ctx).Fields("mimeType").Do()
	if err != nil {
		return nil, mapError(err)
	}
	if meta.MimeType == folderMimeType {
		return nil, domain.ErrNotFile
	}

	resp, err := a.service.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Body, nil
}

// Write uploads content, overwriting an existing file of the same name
// and creating parent folders as needed.
func (a *Adapter) Write(ctx context.Context, remote fspath.RemotePath, r io.Reader) error {
	parentPath, name := splitParent(remote)
	if name == "" {
		return fmt.Errorf("write %q: empty file name", remote)
	}

	parentID, err := a.ensureFolderID(ctx, parentPath)
	if err != nil {
		return err
	}

	existingID, err := a.findChildID(ctx, parentID, name)
	switch {
	case err == nil:
		_, err = a.service.Files.Update(existingID, &drive.File{}).
			Context(ctx).Media(r).Do()
	case errors.Is(err, domain.ErrNotFound):
		var created *drive.File
		created, err = a.service.Files.Create(&drive.File{
			Name:    name,
			Parents: []string{parentID},
		}).Context(ctx).Media(r).Fields("id").Do()
		if err == nil {
			a.mu.Lock()
			a.idCache[normalize(remote)] = created.Id
			a.mu.Unlock()
		}
	default:
		return err
	}
	if err != nil {
		return mapError(err)
	}
	return nil
}

// Delete moves a file or folder to the Drive trash.
func (a *Adapter) Delete(ctx context.Context, remote fspath.RemotePath) error {
	id, err := a.resolveID(ctx, remote)
	if err != nil {
		return err
	}
	_, err = a.service.Files.Update(id, &drive.File{Trashed: true}).Context(ctx).Do()
	if err != nil {
		return mapError(err)
	}
	a.invalidate(remote)
	return nil
}

// Stat returns metadata for a single path.
func (a *Adapter) Stat(ctx context.Context, remote fspath.RemotePath) (domain.FileInfo, error) {
	id, err := a.resolveID(ctx, remote)
	if err != nil {
		return domain.FileInfo{}, err
	}
	f, err := a.service.Files.Get(id).Context(ctx).
		Fields("id, name, mimeType, size, modifiedTime, md5Checksum").Do()
	if err != nil {
		return domain.FileInfo{}, mapError(err)
	}
	return fileInfoFromDrive(remote, f), nil
}

// Mkdir creates a folder and any missing parents.
func (a *Adapter) Mkdir(ctx context.Context, remote fspath.RemotePath) error {
	_, err := a.ensureFolderID(ctx, remote)
	return err
}

// Exists checks if a path exists.
func (a *Adapter) Exists(ctx context.Context, remote fspath.RemotePath) (bool, error) {
	_, err := a.resolveID(ctx, remote)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close releases resources; the Drive client holds none worth closing.
func (a *Adapter) Close() error {
	return nil
}

func splitParent(remote fspath.RemotePath) (fspath.RemotePath, string) {
	parent := fspath.RemotePath("/")
	leaf := ""
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			return parent, leaf
		}
		if leaf != "" {
			parent = parent.AppendComponent(leaf)
		}
		leaf = string(component)
	}
}

// escapeQueryString quotes a name for use inside a Drive query literal.
func escapeQueryString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func fileInfoFromDrive(remote fspath.RemotePath, f *drive.File) domain.FileInfo {
	fileType := domain.FileTypeRegular
	if f.MimeType == folderMimeType {
		fileType = domain.FileTypeDirectory
	}
	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return domain.FileInfo{
		Path:        remote,
		Type:        fileType,
		Size:        f.Size,
		ModTime:     modTime,
		Fingerprint: f.Md5Checksum,
		ETag:        f.Id,
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("drive api: %w", err)
	}
	switch apiErr.Code {
	case 404:
		return domain.ErrNotFound
	case 401, 403:
		return domain.ErrPermissionDenied
	case 409:
		return domain.ErrAlreadyExists
	case 429:
		logger.Get().Warn("drive api rate limited")
		return fmt.Errorf("drive api rate limited: %w", err)
	default:
		return fmt.Errorf("drive api: %w", err)
	}
}
