package forecast

import "testing"

func TestFishingWindows(t *testing.T) {
	sun := SunTimes{Sunrise: "04:53", Sunset: "19:06", SunriseHours: 4.88, SunsetHours: 19.11}
	tides := TideTable{NextHigh: TideEvent{Type: TideHigh, Time: "11:30", clock: 11.5}}

	got := FishingWindows(sun, tides)
	want := []FishingWindow{
		{Range: "04:00-08:00", Reason: "Aube + Marée favorable", Icon: "🟢"},
		{Range: "18:00-20:00", Reason: "Crépuscule + Activité poissons", Icon: "🟢"},
		{Range: "11:00-13:00", Reason: "Marée haute", Icon: "🟡"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d windows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFishingWindowsLateHighTide(t *testing.T) {
	sun := SunTimes{SunriseHours: 7.2, SunsetHours: 17.9}
	tides := TideTable{NextHigh: TideEvent{Type: TideHigh, Time: "23:55", clock: 23.92}}

	got := FishingWindows(sun, tides)
	if got[0].Range != "07:00-08:00" {
		t.Errorf("dawn = %s", got[0].Range)
	}
	if got[1].Range != "16:00-18:00" {
		t.Errorf("dusk = %s", got[1].Range)
	}
	if got[2].Range != "23:00-01:00" {
		t.Errorf("high tide window should wrap past midnight, got %s", got[2].Range)
	}
}

func TestFishingWindowsFromModel(t *testing.T) {
	table := seeded().Tides(mustDate(2025, 6, 6, 10))
	sun := SunTimesAt(33.57, mustDate(2025, 6, 6, 10))
	got := FishingWindows(sun, table)
	if got[2].Range != "11:00-13:00" {
		t.Errorf("high tide window = %s", got[2].Range)
	}
}
