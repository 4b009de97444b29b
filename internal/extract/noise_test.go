package extract

import "testing"

func TestFilterNoise(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		cand     Candidate
		want     Decision
		wantRule string
	}{
		{
			name: "joint signatory",
			cand: Candidate{Name: "Israel", Evidence: "Israel and Hamas agreed to a ceasefire deal", Confidence: 0.9},
			want: Keep, wantRule: "signatory",
		},
		{
			name: "signatory named after with",
			cand: Candidate{Name: "Vietnam", Evidence: "Japan signed a trade deal with Vietnam", Confidence: 0.9},
			want: Keep, wantRule: "signatory",
		},
		{
			name: "wire dateline",
			cand: Candidate{Name: "Moscow", Evidence: "MOSCOW (Reuters) - Russia said on Monday", Confidence: 0.8},
			want: Drop, wantRule: "dateline",
		},
		{
			name: "country named after a wire dateline",
			cand: Candidate{Name: "Russia", Evidence: "MOSCOW (Reuters) - Russia said on Monday", Confidence: 0.8},
			want: Keep, wantRule: "default",
		},
		{
			name: "agency reported from",
			cand: Candidate{Name: "Washington", Evidence: "Agency reported from Washington that talks stalled", Confidence: 0.8},
			want: Drop, wantRule: "dateline",
		},
		{
			name: "correspondent location",
			cand: Candidate{Name: "Nairobi", Evidence: "said our correspondent in Nairobi", Confidence: 0.7},
			want: Drop, wantRule: "dateline",
		},
		{
			name: "mediator by",
			cand: Candidate{Name: "Switzerland", Evidence: "mediated by Switzerland", Confidence: 0.8},
			want: Drop, wantRule: "mediator",
		},
		{
			name: "mediator as subject",
			cand: Candidate{Name: "Qatar", Evidence: "Qatar, which brokered the talks, said", Confidence: 0.8},
			want: Drop, wantRule: "mediator",
		},
		{
			name:   "host that also signed",
			source: "Egypt and Israel signed a peace treaty. Egypt hosted the ceremony.",
			cand:   Candidate{Name: "Egypt", Evidence: "Egypt hosted the ceremony", Confidence: 0.9},
			want:   Keep, wantRule: "default",
		},
		{
			name: "host named before the signatories",
			cand: Candidate{Name: "Egypt", Evidence: "Egypt hosted talks where Israel and Jordan signed an agreement.", Confidence: 0.9},
			want: Drop, wantRule: "mediator",
		},
		{
			name: "signatory after a host",
			cand: Candidate{Name: "Jordan", Evidence: "Egypt hosted talks where Israel and Jordan signed an agreement.", Confidence: 0.9},
			want: Keep, wantRule: "signatory",
		},
		{
			name: "mediator named before the signatories",
			cand: Candidate{Name: "Country C", Evidence: "Country C mediated as Country A and Country B signed an agreement", Confidence: 0.9},
			want: Drop, wantRule: "mediator",
		},
		{
			name: "first signatory after a mediator",
			cand: Candidate{Name: "Country A", Evidence: "Country C mediated as Country A and Country B signed an agreement", Confidence: 0.9},
			want: Keep, wantRule: "signatory",
		},
		{
			name: "host of an unrelated event",
			cand: Candidate{Name: "Qatar", Evidence: "Qatar hosted the World Cup final on Sunday", Confidence: 0.95},
			want: Keep, wantRule: "default",
		},
		{
			name: "host of a summit",
			cand: Candidate{Name: "Turkey", Evidence: "Turkey is hosting peace talks this week", Confidence: 0.8},
			want: Drop, wantRule: "mediator",
		},
		{
			name: "quoted source",
			cand: Candidate{Name: "Washington", Evidence: "according to the Washington Post", Confidence: 0.6},
			want: Drop, wantRule: "generic-noise",
		},
		{
			name: "based attribution",
			cand: Candidate{Name: "London", Evidence: "the London-based Syrian Observatory for Human Rights", Confidence: 0.6},
			want: Drop, wantRule: "generic-noise",
		},
		{
			name: "comparison",
			cand: Candidate{Name: "Argentina", Evidence: "Unlike Argentina, Chile kept its currency", Confidence: 0.7},
			want: Drop, wantRule: "generic-noise",
		},
		{
			name: "subject of a comparison sentence",
			cand: Candidate{Name: "Chile", Evidence: "Unlike Argentina, Chile kept its currency", Confidence: 0.7},
			want: Keep, wantRule: "default",
		},
		{
			name: "plain event location",
			cand: Candidate{Name: "Dhaka", Evidence: "Floods hit Dhaka on Sunday", Confidence: 0.9},
			want: Keep, wantRule: "default",
		},
		{
			name: "no evidence, confident",
			cand: Candidate{Name: "Sudan", Confidence: 0.85},
			want: Keep, wantRule: "no-evidence",
		},
		{
			name: "no evidence, unsure",
			cand: Candidate{Name: "Chad", Evidence: "  ", Confidence: 0.84},
			want: Drop, wantRule: "no-evidence",
		},
	}

	rules := DefaultNoiseRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewNoiseContext(tt.source, []Candidate{tt.cand})
			got, rule := FilterNoise(rules, tt.cand, ctx)
			if got != tt.want || rule != tt.wantRule {
				t.Errorf("expected %s by %s, got %s by %s", tt.want, tt.wantRule, got, rule)
			}
		})
	}
}

func TestFilterNoise_RuleOrder(t *testing.T) {
	// A signatory clause wins even when the same evidence mentions a mediator
	c := Candidate{Name: "France", Evidence: "France and Germany sign agreement, mediated by Switzerland", Confidence: 0.9}
	got, rule := FilterNoise(DefaultNoiseRules(), c, NewNoiseContext("", nil))
	if got != Keep || rule != "signatory" {
		t.Errorf("expected keep by signatory, got %s by %s", got, rule)
	}

	// Without rules everything with evidence is kept
	got, rule = FilterNoise(nil, Candidate{Name: "Qatar", Evidence: "mediated by Qatar"}, nil)
	if got != Keep || rule != "default" {
		t.Errorf("expected default keep, got %s by %s", got, rule)
	}
}

func TestNoiseContext_IsSignatory(t *testing.T) {
	ctx := NewNoiseContext("Leaders of Serbia and Kosovo signed a deal in Brussels.", []Candidate{
		{Name: "Kosovo", Evidence: "Serbia and Kosovo signed a deal"},
	})
	if !ctx.IsSignatory("Serbia") || !ctx.IsSignatory("kosovo") {
		t.Error("expected both parties to be signatories")
	}
	if ctx.IsSignatory("Belgium") || ctx.IsSignatory("Brussels") {
		t.Error("expected the venue not to be a signatory")
	}

	var nilCtx *NoiseContext
	if nilCtx.IsSignatory("Serbia") {
		t.Error("expected nil context to know no signatories")
	}
}

func TestNoiseContext_HostIsNotSignatory(t *testing.T) {
	ctx := NewNoiseContext("Egypt hosted talks where Israel and Jordan signed an agreement.", nil)
	if ctx.IsSignatory("Egypt") {
		t.Error("expected the host not to be a signatory")
	}
	if !ctx.IsSignatory("Israel") || !ctx.IsSignatory("Jordan") {
		t.Error("expected both parties to be signatories")
	}
}

func TestContainsName(t *testing.T) {
	tests := []struct {
		span, name string
		want       bool
	}{
		{"the washington post", "Washington", true},
		{"washington", "Washington, D.C.", true},
		{"ukrainian officials", "Ukraine", false},
		{"nigeria", "Niger", false},
		{"", "Niger", false},
	}
	for _, tt := range tests {
		if got := containsName(tt.span, tt.name); got != tt.want {
			t.Errorf("containsName(%q, %q) = %v, want %v", tt.span, tt.name, got, tt.want)
		}
	}
}
