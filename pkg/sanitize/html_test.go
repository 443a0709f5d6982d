package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "正宗川菜，欢迎光临", "正宗川菜，欢迎光临"},
		{"Tags", "<b>正宗</b>川菜", "正宗 川菜"},
		{"Script", "<script>alert(1)</script>好吃", "alert(1) 好吃"},
		{"Empty", "", ""},
		{"OnlyTags", "<div><br/></div>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
