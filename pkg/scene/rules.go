package scene

// Rule は「キーワード集合 → ラベル」の分類規則1件です。
// 各フィールドの規則リストは先頭から走査され、最初に一致した規則が勝ちます。
// この並び順は契約の一部であり、順序を変えると曖昧なテキストの分類結果が変わるため、
// 規則の追加は必ずリスト末尾に行います。
type Rule struct {
	Keywords []string
	Label    string
}

// 各フィールドの既定ラベル。どの規則にも一致しない場合に返されます（空にはなりません）。
const (
	DefaultAction        = "standing thoughtfully"
	DefaultSetting       = "a softly painted storybook background"
	DefaultLightingMood  = "gentle natural light"
	DefaultEmotionalTone = "warm and curious"
)

// ActionRules は支配的な動作の分類規則です。
var ActionRules = []Rule{
	{Keywords: []string{"read", "reads", "reading", "book", "books"}, Label: "reading a book"},
	{Keywords: []string{"write", "writes", "writing", "wrote", "draw", "draws", "drawing"}, Label: "writing and drawing"},
	{Keywords: []string{"look", "looks", "looking", "examine", "examines", "examining", "search", "searches", "found", "discover", "discovers", "discovered"}, Label: "examining something closely"},
	{Keywords: []string{"say", "says", "said", "speak", "speaks", "speaking", "talk", "talks", "talking", "ask", "asks", "asked", "whisper", "whispered", "shout", "shouted"}, Label: "speaking with others"},
	{Keywords: []string{"run", "runs", "running", "ran", "walk", "walks", "walking", "walked", "jump", "jumps", "jumped", "climb", "climbs", "climbed", "travel", "travels", "journey", "fly", "flies", "flew"}, Label: "moving through the scene"},
	{Keywords: []string{"play", "plays", "playing", "played", "game", "games"}, Label: "playing happily"},
	{Keywords: []string{"sleep", "sleeps", "sleeping", "slept", "rest", "rests", "resting", "dream", "dreams", "dreamed"}, Label: "resting quietly"},
}

// SettingRules は舞台（場所）の分類規則です。
var SettingRules = []Rule{
	{Keywords: []string{"forest", "woods", "tree", "trees"}, Label: "a deep green forest"},
	{Keywords: []string{"school", "classroom", "teacher", "lesson"}, Label: "a cheerful classroom"},
	{Keywords: []string{"home", "house", "room", "kitchen", "bed"}, Label: "a cozy home"},
	{Keywords: []string{"sea", "ocean", "beach", "wave", "waves", "shore"}, Label: "a bright seaside"},
	{Keywords: []string{"mountain", "mountains", "hill", "hills", "cliff"}, Label: "rolling mountains"},
	{Keywords: []string{"city", "town", "street", "streets", "market"}, Label: "a lively town street"},
	{Keywords: []string{"garden", "flower", "flowers", "meadow", "field", "fields"}, Label: "a blooming garden"},
}

// LightingMoodRules は光と雰囲気の分類規則です。
var LightingMoodRules = []Rule{
	{Keywords: []string{"night", "dark", "darkness", "moon", "moonlight", "star", "stars"}, Label: "moonlit darkness"},
	{Keywords: []string{"morning", "dawn", "sunrise"}, Label: "soft morning light"},
	{Keywords: []string{"sunset", "evening", "dusk"}, Label: "warm sunset glow"},
	{Keywords: []string{"storm", "stormy", "rain", "rainy", "thunder", "clouds", "cloudy"}, Label: "moody storm light"},
	{Keywords: []string{"sun", "sunny", "bright", "summer"}, Label: "bright daylight"},
}

// EmotionalToneRules は感情的な色合いの分類規則です。
var EmotionalToneRules = []Rule{
	{Keywords: []string{"happy", "happily", "joy", "joyful", "laugh", "laughed", "laughing", "smile", "smiled", "delight"}, Label: "joyful"},
	{Keywords: []string{"sad", "sadly", "cry", "cried", "tears", "lonely"}, Label: "wistful"},
	{Keywords: []string{"scared", "afraid", "fear", "frightened", "worry", "worried"}, Label: "tense"},
	{Keywords: []string{"excited", "amazing", "wonder", "wonderful", "surprise", "surprised"}, Label: "excited"},
	{Keywords: []string{"calm", "calmly", "quiet", "quietly", "peaceful", "gentle", "gently"}, Label: "calm"},
	{Keywords: []string{"brave", "bravely", "courage", "determined"}, Label: "determined"},
}
