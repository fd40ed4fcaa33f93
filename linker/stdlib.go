package linker

// stdlibSource is the antbyte standard library, adapted (same function
// bodies and arities, except the 4-output cpy, which assigns o3 where the
// original repeats o2 — see DESIGN.md: linker) from
// original_source/src/ant/world/parser/compiler/stdlib.rs's STDLIB
// constant, rewritten into this DSL's concrete syntax. Included unless a
// world file declares `no_std;` (spec.md §6 "Standard library").
const stdlibSource = `
set desc = "antbyte standard library";

fn and = (i0, i1) => out { out = -or(-i0, -i1); }
fn and = (i0, i1, i2) => out { out = -or(-i0, -i1, -i2); }
fn and = (i0, i1, i2, i3) => out { out = -or(-i0, -i1, -i2, -i3); }
fn and = (i0, i1, i2, i3, i4) => out { out = -or(-i0, -i1, -i2, -i3, -i4); }
fn and = (i0, i1, i2, i3, i4, i5) => out { out = -or(-i0, -i1, -i2, -i3, -i4, -i5); }
fn and = (i0, i1, i2, i3, i4, i5, i6) => out { out = -or(-i0, -i1, -i2, -i3, -i4, -i5, -i6); }
fn and = (i0, i1, i2, i3, i4, i5, i6, i7) => out { out = -or(-i0, -i1, -i2, -i3, -i4, -i5, -i6, -i7); }

fn xor = (a, b) => c { c = or(and(-a, b), and(a, -b)); }

fn eq = (a, b) => c { c = or(and(a, b), and(-a, -b)); }

fn mux = (s, a, b) => out { out = or(and(-s, a), and(s, b)); }

fn mux = (s0, s1, a, b, c, d) => out { out = mux(s1, mux(s0, a, b), mux(s0, c, d)); }

fn add = (a, b) => (sum, cout) { sum = xor(a, b); cout = and(a, b); }

fn add = (a, b, cin) => (sum, cout) {
	(sum0, cout0) = add(a, b);
	(sum, cout1) = add(sum0, cin);
	cout = or(cout0, cout1);
}

fn cpy = i0 => o0 { o0 = i0; }
fn cpy = i0 => (o0, o1) { o0 = i0; o1 = i0; }
fn cpy = i0 => (o0, o1, o2) { o0 = i0; o1 = i0; o2 = i0; }
fn cpy = i0 => (o0, o1, o2, o3) { o0 = i0; o1 = i0; o2 = i0; o3 = i0; }

fn buf = i0 => o0 { o0 = i0; }
fn buf = (i0, i1) => (o0, o1) { o0 = i0; o1 = i1; }
fn buf = (i0, i1, i2) => (o0, o1, o2) { o0 = i0; o1 = i1; o2 = i2; }
fn buf = (i0, i1, i2, i3) => (o0, o1, o2, o3) { o0 = i0; o1 = i1; o2 = i2; o3 = i3; }

fn inv = i0 => o0 { o0 = -i0; }
fn inv = (i0, i1) => (o0, o1) { o0 = -i0; o1 = -i1; }
fn inv = (i0, i1, i2) => (o0, o1, o2) { o0 = -i0; o1 = -i1; o2 = -i2; }
fn inv = (i0, i1, i2, i3) => (o0, o1, o2, o3) { o0 = -i0; o1 = -i1; o2 = -i2; o3 = -i3; }
`
