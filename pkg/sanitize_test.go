package protocol

import "testing"

func TestSanitizeDirName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"./foo", "foo"},
		{"../foo", "foo"},
		{"a/b/c", "a_b_c"},
		// only the first "./" goes, the second one is flattened like any slash
		{"././x", "._x"},
		{"../../z/y", "z_y"},
		{"../../secret/keys", "secret_keys"},
		{"./../data", "data"},
		{"../.././x", "._x"},
		{"tests", "tests"},
		{"/abs/path", "_abs_path"},
		{"", ""},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := SanitizeDirName(c.in)
			if got != c.want {
				t.Errorf("SanitizeDirName(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestResultPath(t *testing.T) {
	cases := []struct {
		resultsDir, ip, dir string
		want                string
	}{
		{DefaultResultsDir, "10.0.0.5", "./data", "./results/10.0.0.5_data.txt"},
		{DefaultResultsDir, UnknownHost, "../../secret/keys", "./results/unknown_host_secret_keys.txt"},
		{"/tmp/out/", "192.168.1.2", "tests", "/tmp/out/192.168.1.2_tests.txt"},
	}

	for _, c := range cases {
		got := ResultPath(c.resultsDir, c.ip, c.dir)
		if got != c.want {
			t.Errorf("ResultPath(%q, %q, %q) = %q, want %q", c.resultsDir, c.ip, c.dir, got, c.want)
		}
	}
}
