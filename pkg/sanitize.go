package protocol

import "strings"

const DefaultResultsDir = "./results"

// SanitizeDirName flattens a client directory name into one path component:
// one leading "./" is dropped, every leading "../" is dropped, and the
// remaining slashes become underscores.
func SanitizeDirName(dir string) string {
	dir = strings.TrimPrefix(dir, "./")
	for strings.HasPrefix(dir, "../") {
		dir = dir[len("../"):]
	}
	return strings.ReplaceAll(dir, "/", "_")
}

// ResultPath names the server's output file for one session.
func ResultPath(resultsDir, ip, dir string) string {
	return strings.TrimSuffix(resultsDir, "/") + "/" + ip + "_" + SanitizeDirName(dir) + ".txt"
}
