package domain

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// locatorHostSuffix is the virtual-hosted bucket domain used in media locators.
const locatorHostSuffix = ".s3.amazonaws.com"

// DestinationKey joins a folder and the base name of assetPath.
func DestinationKey(folder, assetPath string) string {
	base := path.Base(strings.ReplaceAll(assetPath, `\`, "/"))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return base
	}
	return folder + "/" + base
}

// UniqueKey inserts the Unix timestamp (seconds) before the extension of key,
// so photo.png becomes photo_1700000000.png in the same folder.
func UniqueKey(key string, now time.Time) string {
	dir, base := path.Split(key)
	// A leading dot belongs to the name: .env has no extension, .env.bak has .bak.
	stem := strings.TrimLeft(base, ".")
	ext := path.Ext(stem)
	name := strings.TrimSuffix(base, ext)
	return dir + name + "_" + strconv.FormatInt(now.Unix(), 10) + ext
}

// MediaLocator returns the externally addressable URL for bucket/key.
func MediaLocator(bucket, key string) string {
	return "https://" + bucket + locatorHostSuffix + "/" + key
}

// ParseMediaLocator splits a locator produced by MediaLocator into bucket and key.
func ParseMediaLocator(locator string) (bucket, key string, err error) {
	u, err := url.Parse(strings.TrimSpace(locator))
	if err != nil {
		return "", "", fmt.Errorf("%w: media locator %q: %w", ErrInvalidInput, locator, err)
	}
	bucket, ok := strings.CutSuffix(u.Host, locatorHostSuffix)
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "https" || !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: unrecognised media locator %q", ErrInvalidInput, locator)
	}
	return bucket, key, nil
}
