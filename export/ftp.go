package export

import (
	"bytes"
	"fmt"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
)

// Uploader pushes a file to the public file host and returns its URL.
type Uploader interface {
	Upload(dir, name string, data []byte) (string, error)
}

// FTPUploader stores files on the chain's web host over plain FTP.
// Directories ("Exporty", "Fotky") map directly onto public URL paths.
type FTPUploader struct {
	Addr     string
	User     string
	Password string
	BaseURL  string
}

func (u *FTPUploader) Upload(dir, name string, data []byte) (string, error) {
	conn, err := ftp.Dial(u.Addr, ftp.DialWithTimeout(15*time.Second))
	if err != nil {
		return "", fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login(u.User, u.Password); err != nil {
		return "", fmt.Errorf("ftp login: %w", err)
	}

	remote := path.Join(dir, name)
	if err := conn.Stor(remote, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("ftp store %s: %w", remote, err)
	}
	return u.BaseURL + "/" + remote, nil
}
