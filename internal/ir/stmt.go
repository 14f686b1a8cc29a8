package ir

// Stmt is the closed sum type over IR statements.
type Stmt interface {
	isStmt()
}

type AssignOp int

const (
	SET AssignOp = iota
	ASSIGN_ADD
	ASSIGN_SUB
	ASSIGN_MUL
	ASSIGN_AND
	ASSIGN_OR
)

// Assign is target <op>= value.
type Assign struct {
	Target string
	Op     AssignOp
	Value  Expr
}

func (*Assign) isStmt() {}

func Set(target string, value Expr) *Assign { return &Assign{Target: target, Op: SET, Value: value} }

// If is a plain if/else (elseif chains parsed down into nested If.Else).
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (*If) isStmt() {}

// WhenBranch is one (cond, body) arm of a When statement.
type WhenBranch struct {
	Cond Expr
	Body []Stmt
}

// When is an ordered list of (cond, body) branches plus an optional else,
// i.e. a cascading cond chain lowered to if/else-if/else in C.
type When struct {
	Branches []WhenBranch
	Else     []Stmt
}

func (*When) isStmt() {}

// While loops while Cond is truthy.
type While struct {
	Cond Expr
	Body []Stmt
}

func (*While) isStmt() {}

// For counts Counter from Range[0] to Range[1] inclusive.
type For struct {
	Counter string
	Range   [2]Expr
	Body    []Stmt
}

func (*For) isStmt() {}

// FuncCall is a call statement whose result (if any) is discarded.
type FuncCall struct {
	Name string
	Args []Expr
}

func (*FuncCall) isStmt() {}

// Raw escapes to literal C text, emitted verbatim.
type Raw struct {
	Code string
}

func (*Raw) isStmt() {}

// ArrayAssign is array[index] = value.
type ArrayAssign struct {
	Array string
	Index Expr
	Value Expr
}

func (*ArrayAssign) isStmt() {}

// SceneChange requests a scene transition, observed at the next frame per
// spec §5 ordering guarantee #2.
type SceneChange struct {
	Scene string
}

func (*SceneChange) isStmt() {}

// DomainStmt is the opaque carrier for the large family of category
// statements (Sound, Mixer, Animation, StateMachine, Pool, Camera,
// Transition, Palette, Display, Dialog, Menu, Save, Tween, Path, Cutscene,
// Link, InputBuffer, Physics). Category handlers in codegen/sim dispatch on
// Category first (first handler that claims the category wins), then switch
// on Op. Args carries expression operands; Scalars carries compile-time
// constants (durations, easing names, step counts) that do not need runtime
// evaluation.
type DomainStmt struct {
	Category string
	Op       string
	Target   string // owning sprite/pool/group/dialog/menu/machine/path/schema name
	Args     []Expr
	Scalars  map[string]any
	Nested   []Stmt // used by composed transitions (Sequence/Parallel children) and menu/dialog callbacks
}

func (*DomainStmt) isStmt() {}

func DS(category, op, target string, args ...Expr) *DomainStmt {
	return &DomainStmt{Category: category, Op: op, Target: target, Args: args}
}

func (d *DomainStmt) WithScalars(kv map[string]any) *DomainStmt {
	d.Scalars = kv
	return d
}

func (d *DomainStmt) WithNested(stmts ...Stmt) *DomainStmt {
	d.Nested = stmts
	return d
}

// --- Sound ---

func SoundPlay(sfx string) *DomainStmt       { return DS("sound", "play", sfx) }
func SoundStop(sfx string) *DomainStmt       { return DS("sound", "stop", sfx) }
func SoundMute(sfx string) *DomainStmt       { return DS("sound", "mute", sfx) }
func SoundPan(sfx string, pan Expr) *DomainStmt {
	return DS("sound", "pan", sfx, pan)
}
func SoundMasterVolume(vol Expr) *DomainStmt { return DS("sound", "master_volume", "", vol) }
func MusicPlay(track string) *DomainStmt     { return DS("sound", "music_play", track) }
func MusicPause() *DomainStmt                { return DS("sound", "music_pause", "") }
func MusicResume() *DomainStmt               { return DS("sound", "music_resume", "") }
func MusicStop() *DomainStmt                 { return DS("sound", "music_stop", "") }
func MusicFade(target Expr, frames Expr) *DomainStmt {
	return DS("sound", "music_fade", "", target, frames)
}

// --- Mixer ---

func MixerSetVolume(group string, vol Expr) *DomainStmt { return DS("mixer", "set_volume", group, vol) }
func MixerFade(group string, target Expr, frames Expr) *DomainStmt {
	return DS("mixer", "fade", group, target, frames)
}
func MixerMute(group string) *DomainStmt       { return DS("mixer", "mute", group) }
func MixerToggleMute(group string) *DomainStmt { return DS("mixer", "toggle_mute", group) }
func MixerPriorityCheck(channel string, priority Expr) *DomainStmt {
	return DS("mixer", "priority_check", channel, priority)
}

// --- Animation ---

func AnimPlay(sprite, anim string) *DomainStmt {
	d := DS("animation", "play", sprite)
	d.Scalars = map[string]any{"anim": anim}
	return d
}
func AnimStop(sprite string) *DomainStmt   { return DS("animation", "stop", sprite) }
func AnimPause(sprite string) *DomainStmt  { return DS("animation", "pause", sprite) }
func AnimResume(sprite string) *DomainStmt { return DS("animation", "resume", sprite) }
func AnimSetSpeed(sprite string, speed Expr) *DomainStmt {
	return DS("animation", "set_speed", sprite, speed)
}
func AnimSetFrame(sprite string, frame Expr) *DomainStmt {
	return DS("animation", "set_frame", sprite, frame)
}
func AnimQueue(sprite, anim string) *DomainStmt {
	d := DS("animation", "queue", sprite)
	d.Scalars = map[string]any{"anim": anim}
	return d
}

// --- State machine ---

func SMStart(machine, state string) *DomainStmt {
	d := DS("statemachine", "start", machine)
	d.Scalars = map[string]any{"state": state}
	return d
}
func SMGoto(machine, state string) *DomainStmt {
	d := DS("statemachine", "goto", machine)
	d.Scalars = map[string]any{"state": state}
	return d
}
func SMUpdate(machine string) *DomainStmt { return DS("statemachine", "update", machine) }

// --- Pool ---

func PoolSpawn(pool string) *DomainStmt { return DS("pool", "spawn", pool) }
func PoolSpawnAt(pool string, x, y Expr) *DomainStmt {
	return DS("pool", "spawn_at", pool, x, y)
}
func PoolTrySpawn(pool string) *DomainStmt { return DS("pool", "try_spawn", pool) }
func PoolDespawn(pool string, index Expr) *DomainStmt {
	return DS("pool", "despawn", pool, index)
}
func PoolDespawnAll(pool string) *DomainStmt { return DS("pool", "despawn_all", pool) }
func PoolForEach(pool string, body []Stmt) *DomainStmt {
	d := DS("pool", "for_each", pool)
	d.Nested = body
	return d
}
func PoolDespawnWhere(pool string, cond Expr) *DomainStmt {
	return DS("pool", "despawn_where", pool, cond)
}
func PoolUpdate(pool string) *DomainStmt { return DS("pool", "update", pool) }

// --- Camera ---

func CameraSetPosition(x, y Expr) *DomainStmt { return DS("camera", "set_position", "", x, y) }
func CameraFollow(target string) *DomainStmt  { return DS("camera", "follow", target) }
func CameraStopFollow() *DomainStmt           { return DS("camera", "stop_follow", "") }
func CameraSnap() *DomainStmt                 { return DS("camera", "snap", "") }
func CameraSetBounds(x0, y0, x1, y1 Expr) *DomainStmt {
	return DS("camera", "set_bounds", "", x0, y0, x1, y1)
}
func CameraShake(intensity, decay Expr) *DomainStmt {
	return DS("camera", "shake", "", intensity, decay)
}
func CameraShakeStop() *DomainStmt { return DS("camera", "shake_stop", "") }
func CameraUpdate() *DomainStmt    { return DS("camera", "update", "") }

// --- Transitions ---

func TransFadeOut(frames Expr) *DomainStmt { return DS("transition", "fade_out", "", frames) }
func TransFadeIn(frames Expr) *DomainStmt  { return DS("transition", "fade_in", "", frames) }
func TransFlash(color Expr, frames Expr) *DomainStmt {
	return DS("transition", "flash", "", color, frames)
}
func TransWipe(dir string, frames Expr) *DomainStmt {
	d := DS("transition", "wipe", "", frames)
	d.Scalars = map[string]any{"dir": dir}
	return d
}
func TransIris(mode string, frames Expr) *DomainStmt {
	d := DS("transition", "iris", "", frames)
	d.Scalars = map[string]any{"mode": mode}
	return d
}
func TransComposed(steps ...Stmt) *DomainStmt {
	d := DS("transition", "composed", "")
	d.Nested = steps
	return d
}
func TransParallel(steps ...Stmt) *DomainStmt {
	d := DS("transition", "parallel", "")
	d.Nested = steps
	return d
}
func TransScreenShake(intensity, decay Expr) *DomainStmt {
	return DS("transition", "shake", "", intensity, decay)
}
func TransWait(frames Expr) *DomainStmt { return DS("transition", "wait", "", frames) }
func TransCallback(body ...Stmt) *DomainStmt {
	d := DS("transition", "callback", "")
	d.Nested = body
	return d
}
func TransCancel() *DomainStmt { return DS("transition", "cancel", "") }

// --- Palette ---

func PaletteApply(name string) *DomainStmt { return DS("palette", "apply", name) }
func PaletteSetColor(name string, slot Expr, rgb555 Expr) *DomainStmt {
	return DS("palette", "set_color", name, slot, rgb555)
}
func PaletteFlash(name string, frames Expr) *DomainStmt {
	return DS("palette", "flash", name, frames)
}
func PaletteFade(name string, frames Expr) *DomainStmt {
	return DS("palette", "fade", name, frames)
}

// --- Display ---

func DisplayClear() *DomainStmt        { return DS("display", "clear", "") }
func DisplayShowSprites() *DomainStmt  { return DS("display", "show_sprites", "") }
func DisplayHideSprites() *DomainStmt  { return DS("display", "hide_sprites", "") }
func DisplayShowBkg() *DomainStmt      { return DS("display", "show_bkg", "") }
func DisplayHideBkg() *DomainStmt      { return DS("display", "hide_bkg", "") }
func DisplayPrintAt(x, y Expr, text string) *DomainStmt {
	d := DS("display", "print_at", "", x, y)
	d.Scalars = map[string]any{"text": text}
	return d
}

// --- Dialog ---

func DialogShow(name string) *DomainStmt { return DS("dialog", "show", name) }
func DialogHide(name string) *DomainStmt { return DS("dialog", "hide", name) }
func DialogSay(name, text string) *DomainStmt {
	d := DS("dialog", "say", name)
	d.Scalars = map[string]any{"text": text}
	return d
}
func DialogChoice(name string, options []string) *DomainStmt {
	d := DS("dialog", "choice", name)
	d.Scalars = map[string]any{"options": options}
	return d
}
func DialogTick(name string) *DomainStmt { return DS("dialog", "tick", name) }

// --- Menu ---

func MenuShow(name string) *DomainStmt   { return DS("menu", "show", name) }
func MenuHide(name string) *DomainStmt   { return DS("menu", "hide", name) }
func MenuToggle(name string) *DomainStmt { return DS("menu", "toggle", name) }
func MenuOpen(name string) *DomainStmt   { return DS("menu", "open", name) }
func MenuClose(name string) *DomainStmt  { return DS("menu", "close", name) }
func MenuCancel(name string) *DomainStmt { return DS("menu", "cancel", name) }
func MenuSelect(name string) *DomainStmt { return DS("menu", "select", name) }
func MenuMoveTo(name string, index Expr) *DomainStmt {
	return DS("menu", "move_to", name, index)
}
func MenuTick(name string) *DomainStmt { return DS("menu", "tick", name) }

// --- Save ---

func SaveLoad(schema string, slot Expr) *DomainStmt  { return DS("save", "load", schema, slot) }
func SaveSave(schema string, slot Expr) *DomainStmt  { return DS("save", "save", schema, slot) }
func SaveErase(schema string, slot Expr) *DomainStmt { return DS("save", "erase", schema, slot) }
func SaveCopy(schema string, from, to Expr) *DomainStmt {
	return DS("save", "copy", schema, from, to)
}
func SaveFieldWrite(schema, field string, value Expr) *DomainStmt {
	d := DS("save", "field_write", schema, value)
	d.Scalars = map[string]any{"field": field}
	return d
}
func SaveArrayWrite(schema, field string, index, value Expr) *DomainStmt {
	d := DS("save", "array_write", schema, index, value)
	d.Scalars = map[string]any{"field": field}
	return d
}

// --- Tween ---

func TweenStart(target string, from, to Expr, durationFrames int, easing string) *DomainStmt {
	d := DS("tween", "start", target, from, to)
	d.Scalars = map[string]any{"duration": durationFrames, "easing": easing}
	return d
}
func TweenCancel(target string) *DomainStmt { return DS("tween", "cancel", target) }

// --- Path ---

func PathFind(path, grid string, toX, toY Expr) *DomainStmt {
	d := DS("path", "find", path, toX, toY)
	d.Scalars = map[string]any{"grid": grid}
	return d
}
func PathAdvance(path string) *DomainStmt { return DS("path", "advance", path) }
func PathFollow(path, sprite string) *DomainStmt {
	d := DS("path", "follow", path)
	d.Scalars = map[string]any{"sprite": sprite}
	return d
}
func PathReset(path string) *DomainStmt { return DS("path", "reset", path) }
func NavSetTile(grid string, x, y, cost Expr) *DomainStmt {
	return DS("path", "nav_set_tile", grid, x, y, cost)
}
func NavSetWeight(grid string, x, y, weight Expr) *DomainStmt {
	return DS("path", "nav_set_weight", grid, x, y, weight)
}
func NavInit(grid string) *DomainStmt { return DS("path", "nav_init", grid) }

// --- Cutscene ---

func CutsceneStart(name string) *DomainStmt  { return DS("cutscene", "start", name) }
func CutsceneUpdate(name string) *DomainStmt { return DS("cutscene", "update", name) }
func CutsceneSkip(name string) *DomainStmt   { return DS("cutscene", "skip", name) }

// --- Link cable ---

func LinkInit() *DomainStmt   { return DS("link", "init", "") }
func LinkUpdate() *DomainStmt { return DS("link", "update", "") }
func LinkSend(value Expr) *DomainStmt { return DS("link", "send", "", value) }

// --- Input buffer ---

func InputDecl(name string) *DomainStmt  { return DS("input", "decl", name) }
func InputReset(name string) *DomainStmt { return DS("input", "reset", name) }
func InputFill(name string, mask Expr) *DomainStmt {
	return DS("input", "fill", name, mask)
}

// --- Physics ---

func PhysicsApply(body string, fx, fy Expr) *DomainStmt {
	return DS("physics", "apply", body, fx, fy)
}
func PhysicsWorldUpdate(world string) *DomainStmt { return DS("physics", "world_update", world) }
func PhysicsCollisionResponse(body string) *DomainStmt {
	return DS("physics", "collision_response", body)
}
